package controller

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/database"
)

var validate = validator.New()

const (
	defaultLimit = 10
	maxLimit     = 50
)

// respondError converts any error into the `{"message": ...}` body and the
// status its kind maps to. Server-side failures get logged with their cause.
func respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	if status >= 500 {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(status, gin.H{"message": apperror.Message(err)})
}

// parsePagination reads page/limit query parameters with the shared defaults:
// page >= 1; limit defaults to 10 when absent, unparsable, or zero, clamps to
// 1 when negative, and caps at 50.
func parsePagination(c *gin.Context) (page, limit, skip int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	skip = (page - 1) * limit
	return page, limit, skip
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func listBody(data any, page, limit int, total int64) gin.H {
	return gin.H{
		"data": data,
		"pagination": pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
}

// ensureExists guards image resolution in update handlers: nothing should
// land on the remote store for a document that is not there.
func ensureExists(ctx context.Context, coll database.Collection, id bson.ObjectID, notFoundMsg, failMsg string) error {
	err := coll.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.New(apperror.NotFound, notFoundMsg)
	}
	if err != nil {
		return apperror.Wrap(apperror.Internal, failMsg, err)
	}
	return nil
}

// listPage fetches one newest-first page of a collection plus the total
// matching count.
func listPage[T any](ctx context.Context, coll database.Collection, filter bson.M, skip, limit int) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0, limit)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}
