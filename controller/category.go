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

type CategoryController struct {
	DB    database.Database
	Store storage.Store
}

func NewCategoryController(db database.Database, store storage.Store) *CategoryController {
	return &CategoryController{DB: db, Store: store}
}

// additionalImages takes 1 to 4 entries on both create and update.
var (
	categoryBannerPolicy     = images.Policy{Field: "bannerImage", Min: 1, Max: 1}
	categoryAdditionalPolicy = images.Policy{Field: "additionalImages", Min: 1, Max: 4}
)

type createCategoryRequest struct {
	Name             string       `json:"name" validate:"required"`
	Description      string       `json:"description" validate:"required"`
	BannerImage      images.Field `json:"bannerImage"`
	AdditionalImages images.Field `json:"additionalImages"`
}

type updateCategoryRequest struct {
	Name             *string       `json:"name"`
	Description      *string       `json:"description"`
	BannerImage      *images.Field `json:"bannerImage"`
	AdditionalImages *images.Field `json:"additionalImages"`
}

func (cc *CategoryController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "name, description, and bannerImage are required"))
		return
	}

	bannerEntries, err := images.Normalize(req.BannerImage, categoryBannerPolicy)
	if err != nil {
		respondError(c, err)
		return
	}
	additionalEntries, err := images.Normalize(req.AdditionalImages, categoryAdditionalPolicy)
	if err != nil {
		respondError(c, err)
		return
	}

	bannerRefs, err := images.Resolve(ctx, cc.Store, bannerEntries, "categories")
	if err != nil {
		respondError(c, err)
		return
	}
	additionalRefs, err := images.Resolve(ctx, cc.Store, additionalEntries, "categories")
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	category := models.Category{
		ID:               bson.NewObjectID(),
		Name:             req.Name,
		Description:      req.Description,
		BannerImage:      bannerRefs[0],
		AdditionalImages: additionalRefs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := cc.DB.Collection("categories").InsertOne(ctx, category); err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to create category", err))
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (cc *CategoryController) List(c *gin.Context) {
	page, limit, skip := parsePagination(c)

	docs, total, err := listPage[models.Category](c.Request.Context(), cc.DB.Collection("categories"), bson.M{}, skip, limit)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to list categories", err))
		return
	}
	c.JSON(http.StatusOK, listBody(docs, page, limit, total))
}

func (cc *CategoryController) GetByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}

	var category models.Category
	err = cc.DB.Collection("categories").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to fetch category", err))
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}

	coll := cc.DB.Collection("categories")
	if req.BannerImage != nil || req.AdditionalImages != nil {
		if err := ensureExists(ctx, coll, id, "Category not found", "Failed to update category"); err != nil {
			respondError(c, err)
			return
		}
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.BannerImage != nil {
		entries, err := images.Normalize(*req.BannerImage, categoryBannerPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, cc.Store, entries, "categories")
		if err != nil {
			respondError(c, err)
			return
		}
		update["banner_image"] = refs[0]
	}
	if req.AdditionalImages != nil {
		entries, err := images.Normalize(*req.AdditionalImages, categoryAdditionalPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, cc.Store, entries, "categories")
		if err != nil {
			respondError(c, err)
			return
		}
		update["additional_images"] = refs
	}

	var category models.Category
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to update category", err))
		return
	}
	c.JSON(http.StatusOK, category)
}

func (cc *CategoryController) Delete(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}

	result, err := cc.DB.Collection("categories").DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to delete category", err))
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, apperror.New(apperror.NotFound, "Category not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
