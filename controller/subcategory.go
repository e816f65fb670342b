package controller

import (
	"errors"
	"net/http"
	"strings"
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

type SubCategoryController struct {
	DB    database.Database
	Store storage.Store
}

func NewSubCategoryController(db database.Database, store storage.Store) *SubCategoryController {
	return &SubCategoryController{DB: db, Store: store}
}

var (
	subCategoryBannerPolicy = images.Policy{Field: "bannerimg", Max: 1}
	subCategoryImagesPolicy = images.Policy{Field: "images"}
)

func parentCategoryError() error {
	return apperror.Newf(apperror.Validation, "parentCategory must be one of: %s", strings.Join(models.ParentCategories, ", "))
}

type createSubCategoryRequest struct {
	Name           string       `json:"name" validate:"required"`
	ParentCategory string       `json:"parentCategory" validate:"required"`
	Description    string       `json:"description"`
	BannerImg      images.Field `json:"bannerimg"`
	Images         images.Field `json:"images"`
}

type updateSubCategoryRequest struct {
	Name           *string       `json:"name"`
	ParentCategory *string       `json:"parentCategory"`
	Description    *string       `json:"description"`
	BannerImg      *images.Field `json:"bannerimg"`
	Images         *images.Field `json:"images"`
}

func (sc *SubCategoryController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "name and parentCategory are required"))
		return
	}
	if !models.ValidParentCategory(req.ParentCategory) {
		respondError(c, parentCategoryError())
		return
	}

	bannerEntries, err := images.Normalize(req.BannerImg, subCategoryBannerPolicy)
	if err != nil {
		respondError(c, err)
		return
	}
	imageEntries, err := images.Normalize(req.Images, subCategoryImagesPolicy)
	if err != nil {
		respondError(c, err)
		return
	}

	bannerRefs, err := images.Resolve(ctx, sc.Store, bannerEntries, "subcategories")
	if err != nil {
		respondError(c, err)
		return
	}
	imageRefs, err := images.Resolve(ctx, sc.Store, imageEntries, "subcategories")
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	subCategory := models.SubCategory{
		ID:             bson.NewObjectID(),
		Name:           req.Name,
		Description:    req.Description,
		Images:         imageRefs,
		ParentCategory: req.ParentCategory,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(bannerRefs) > 0 {
		subCategory.BannerImg = &bannerRefs[0]
	}

	if _, err := sc.DB.Collection("subcategories").InsertOne(ctx, subCategory); err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to create subcategory", err))
		return
	}
	c.JSON(http.StatusCreated, subCategory)
}

func (sc *SubCategoryController) List(c *gin.Context) {
	page, limit, skip := parsePagination(c)

	docs, total, err := listPage[models.SubCategory](c.Request.Context(), sc.DB.Collection("subcategories"), bson.M{}, skip, limit)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to list subcategories", err))
		return
	}
	c.JSON(http.StatusOK, listBody(docs, page, limit, total))
}

func (sc *SubCategoryController) GetByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}

	var subCategory models.SubCategory
	err = sc.DB.Collection("subcategories").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&subCategory)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to fetch subcategory", err))
		return
	}
	c.JSON(http.StatusOK, subCategory)
}

func (sc *SubCategoryController) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}

	var req updateSubCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}

	coll := sc.DB.Collection("subcategories")
	if req.BannerImg != nil || req.Images != nil {
		if err := ensureExists(ctx, coll, id, "SubCategory not found", "Failed to update subcategory"); err != nil {
			respondError(c, err)
			return
		}
	}

	update := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.ParentCategory != nil {
		if !models.ValidParentCategory(*req.ParentCategory) {
			respondError(c, parentCategoryError())
			return
		}
		update["parent_category"] = *req.ParentCategory
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.BannerImg != nil {
		entries, err := images.Normalize(*req.BannerImg, subCategoryBannerPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, sc.Store, entries, "subcategories")
		if err != nil {
			respondError(c, err)
			return
		}
		if len(refs) > 0 {
			update["bannerimg"] = refs[0]
		} else {
			update["bannerimg"] = nil
		}
	}
	if req.Images != nil {
		entries, err := images.Normalize(*req.Images, subCategoryImagesPolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, sc.Store, entries, "subcategories")
		if err != nil {
			respondError(c, err)
			return
		}
		update["images"] = refs
	}

	var subCategory models.SubCategory
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&subCategory)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to update subcategory", err))
		return
	}
	c.JSON(http.StatusOK, subCategory)
}

func (sc *SubCategoryController) Delete(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}

	result, err := sc.DB.Collection("subcategories").DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to delete subcategory", err))
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, apperror.New(apperror.NotFound, "SubCategory not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
