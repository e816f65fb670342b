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

type ProductController struct {
	DB    database.Database
	Store storage.Store
}

func NewProductController(db database.Database, store storage.Store) *ProductController {
	return &ProductController{DB: db, Store: store}
}

var productImagesPolicy = images.Policy{Field: "images", Min: 1}

type createProductRequest struct {
	Heading     string       `json:"heading" validate:"required"`
	Type        string       `json:"type" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Images      images.Field `json:"images"`
}

type updateProductRequest struct {
	Heading     *string       `json:"heading"`
	Type        *string       `json:"type"`
	Description *string       `json:"description"`
	Images      *images.Field `json:"images"`
}

func (pc *ProductController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "heading, type, and description are required"))
		return
	}

	entries, err := images.Normalize(req.Images, productImagesPolicy)
	if err != nil {
		respondError(c, err)
		return
	}
	refs, err := images.Resolve(ctx, pc.Store, entries, "products")
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	product := models.Product{
		ID:          bson.NewObjectID(),
		Heading:     req.Heading,
		Type:        req.Type,
		Description: req.Description,
		Images:      refs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := pc.DB.Collection("products").InsertOne(ctx, product); err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to create product", err))
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) List(c *gin.Context) {
	page, limit, skip := parsePagination(c)

	docs, total, err := listPage[models.Product](c.Request.Context(), pc.DB.Collection("products"), bson.M{}, skip, limit)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to list products", err))
		return
	}
	c.JSON(http.StatusOK, listBody(docs, page, limit, total))
}

func (pc *ProductController) GetByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}

	var product models.Product
	err = pc.DB.Collection("products").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to fetch product", err))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}

	coll := pc.DB.Collection("products")

	update := bson.M{"updated_at": time.Now()}
	if req.Heading != nil {
		update["heading"] = *req.Heading
	}
	if req.Type != nil {
		update["type"] = *req.Type
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Images != nil {
		if err := ensureExists(ctx, coll, id, "Product not found", "Failed to update product"); err != nil {
			respondError(c, err)
			return
		}
		entries, err := images.Normalize(*req.Images, productImagesPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, pc.Store, entries, "products")
		if err != nil {
			respondError(c, err)
			return
		}
		update["images"] = refs
	}

	var product models.Product
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to update product", err))
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Delete(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}

	result, err := pc.DB.Collection("products").DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to delete product", err))
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, apperror.New(apperror.NotFound, "Product not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
