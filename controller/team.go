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

type TeamController struct {
	DB    database.Database
	Store storage.Store
}

func NewTeamController(db database.Database, store storage.Store) *TeamController {
	return &TeamController{DB: db, Store: store}
}

var teamImagePolicy = images.Policy{Field: "image", Max: 1}

type createTeamRequest struct {
	PF    string       `json:"pf" validate:"required"`
	Name  string       `json:"name" validate:"required"`
	Role  string       `json:"role" validate:"required"`
	Image images.Field `json:"image"`
}

type updateTeamRequest struct {
	PF    *string       `json:"pf"`
	Name  *string       `json:"name"`
	Role  *string       `json:"role"`
	Image *images.Field `json:"image"`
}

func (tc *TeamController) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "pf, name and role are required"))
		return
	}

	entries, err := images.Normalize(req.Image, teamImagePolicy)
	if err != nil {
		respondError(c, err)
		return
	}
	refs, err := images.Resolve(ctx, tc.Store, entries, "teams")
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	team := models.Team{
		ID:        bson.NewObjectID(),
		PF:        req.PF,
		Name:      req.Name,
		Role:      req.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(refs) > 0 {
		team.Image = &refs[0]
	}

	if _, err := tc.DB.Collection("teams").InsertOne(ctx, team); err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to create team member", err))
		return
	}
	c.JSON(http.StatusCreated, team)
}

func (tc *TeamController) List(c *gin.Context) {
	page, limit, skip := parsePagination(c)

	docs, total, err := listPage[models.Team](c.Request.Context(), tc.DB.Collection("teams"), bson.M{}, skip, limit)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to list team members", err))
		return
	}
	c.JSON(http.StatusOK, listBody(docs, page, limit, total))
}

func (tc *TeamController) GetByID(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}

	var team models.Team
	err = tc.DB.Collection("teams").FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to fetch team member", err))
		return
	}
	c.JSON(http.StatusOK, team)
}

func (tc *TeamController) Update(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}

	var req updateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.New(apperror.Validation, "Invalid request body"))
		return
	}

	coll := tc.DB.Collection("teams")

	update := bson.M{"updated_at": time.Now()}
	if req.PF != nil {
		update["pf"] = *req.PF
	}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Role != nil {
		update["role"] = *req.Role
	}
	if req.Image != nil {
		if err := ensureExists(ctx, coll, id, "Team member not found", "Failed to update team member"); err != nil {
			respondError(c, err)
			return
		}
		entries, err := images.Normalize(*req.Image, teamImagePolicy)
		if err != nil {
			respondError(c, err)
			return
		}
		refs, err := images.Resolve(ctx, tc.Store, entries, "teams")
		if err != nil {
			respondError(c, err)
			return
		}
		if len(refs) > 0 {
			update["image"] = refs[0]
		} else {
			update["image"] = nil
		}
	}

	var team models.Team
	err = coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&team)
	if errors.Is(err, mongo.ErrNoDocuments) {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to update team member", err))
		return
	}
	c.JSON(http.StatusOK, team)
}

func (tc *TeamController) Delete(c *gin.Context) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}

	result, err := tc.DB.Collection("teams").DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Failed to delete team member", err))
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, apperror.New(apperror.NotFound, "Team member not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
