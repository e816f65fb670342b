package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/database"
	"github.com/RayyanKhan4004/PEMPAK-api/images"
	"github.com/RayyanKhan4004/PEMPAK-api/models"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

type BlogController struct {
	DB    database.Database
	Store storage.Store
}

func NewBlogController(db database.Database, store storage.Store) *BlogController {
	return &BlogController{DB: db, Store: store}
}

var (
	blogImagePolicy  = images.Policy{Field: "image", Min: 1, Max: 1}
	blogImagesPolicy = images.Policy{Field: "images", Max: 5}
)

type createBlogRequest struct {
	Image       images.Field `json:"image"`
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description" validate:"required"`
	PF          string       `json:"pf" validate:"required"`
	Date        *time.Time   `json:"date"`
	Images      images.Field `json:"images"`
}

type updateBlogRequest struct {
	Image       *images.Field `json:"image"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	PF          *string       `json:"pf"`
	Date        *time.Time    `json:"date"`
	Images      *images.Field `json:"images"`
}

func (bc *BlogController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "image, title, description, pf are required"))
		return
	}

	primaryEntries, err := images.Normalize(req.Image, blogImagePolicy)
	if err != nil {
		respondError(c, err)
		return
	}
	secondaryEntries, err := images.Normalize(req.Images, blogImagesPolicy)
	if err != nil {
		respondError(c, err)
		return
	}

	primaryRefs, err := images.Resolve(ctx, bc.Store, primaryEntries, "blogs")
	if err != nil {
		respondError(c, err)
		return
	}
	secondaryRefs, err := images.Resolve(ctx, bc.Store, secondaryEntries, "blogs")
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	blog := models.Blog{
		ID:          bson.NewObjectID(),
		Image:       primaryRefs[0],
		Title:       req.Title,
		Description: req.Description,
		PF:          req.PF,
		Date:        date,
		Images:      secondaryRefs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := bc.DB.Collection("blogs").InsertOne(ctx, blog); err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to create blog", err))
		return
	}
	c.JSON(http.StatusCreated, blog)
}

func (bc *BlogController) List(c *gin.Context) {
	page, limit, skip := parsePagination(c)

	docs, total, err := listPage[models.Blog](c.Request.Context(), bc.DB.Collection("blogs"), bson.M{}, skip, limit)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to list blogs", err))
		return
	}
	c.JSON(http.StatusOK, listBody(docs, page, limit, total))
}

func (bc *BlogController) GetByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}

	var blog models.Blog
	err = bc.DB.Collection("blogs").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to fetch blog", err))
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (bc *BlogController) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}

	var req updateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}

	coll := bc.DB.Collection("blogs")
	if req.Image != nil || req.Images != nil {
		if err := ensureExists(ctx, coll, id, "Blog not found", "Failed to update blog"); err != nil {
			respondError(c, err)
			return
		}
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Image != nil {
		entries, err := images.Normalize(*req.Image, blogImagePolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, bc.Store, entries, "blogs")
		if err != nil {
			respondError(c, err)
			return
		}
		update["image"] = refs[0]
	}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.PF != nil {
		update["pf"] = *req.PF
	}
	if req.Date != nil {
		update["date"] = *req.Date
	}
	if req.Images != nil {
		entries, err := images.Normalize(*req.Images, blogImagesPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, bc.Store, entries, "blogs")
		if err != nil {
			respondError(c, err)
			return
		}
		update["images"] = refs
	}

	var blog models.Blog
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to update blog", err))
		return
	}
	c.JSON(http.StatusOK, blog)
}

func (bc *BlogController) Delete(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}

	result, err := bc.DB.Collection("blogs").DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to delete blog", err))
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, apperror.New(apperror.NotFound, "Blog not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
