package services

import (
	"context"
	"testing"
	"time"

	"github.com/nuuxixv/MindConnect/internal/database/dbtest"
	"github.com/nuuxixv/MindConnect/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestProfileCreateAndList(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.User{ID: "u1"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2"}).Error)
	svc := NewProfileService(db)
	ctx := context.Background()

	birth := time.Date(2018, 5, 4, 0, 0, 0, 0, time.UTC)
	gender := "female"
	p, err := svc.Create(ctx, "u1", ProfileInput{Name: "  Daughter ", Relation: models.RelationChild, BirthDate: &birth, Gender: &gender})
	require.NoError(t, err)
	require.Equal(t, "Daughter", p.Name)

	_, err = svc.Create(ctx, "u2", ProfileInput{Name: "Me", Relation: models.RelationSelf})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "female", *list[0].Gender)
	require.True(t, list[0].BirthDate.Equal(birth))

	_, err = svc.Create(ctx, "u1", ProfileInput{Relation: "cousin"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"name", "relation"}, fieldNames(verr))
}

func TestProfileDelete(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&models.User{ID: "u1"}).Error)
	require.NoError(t, db.Create(&models.User{ID: "u2"}).Error)
	svc := NewProfileService(db)
	ctx := context.Background()

	free, err := svc.Create(ctx, "u1", ProfileInput{Name: "Spouse", Relation: models.RelationSpouse})
	require.NoError(t, err)
	used, err := svc.Create(ctx, "u1", ProfileInput{Name: "Me", Relation: models.RelationSelf})
	require.NoError(t, err)

	test := models.Test{Title: "t", Description: "d", Category: "c", IsPublic: true}
	require.NoError(t, db.Create(&test).Error)
	require.NoError(t, db.Create(&models.TestResult{
		UserID:      "u1",
		ProfileID:   used.ID,
		TestID:      test.ID,
		Answers:     datatypes.NewJSONType(map[string]float64{"1": 1}),
		Score:       datatypes.NewJSONType(models.Score{Total: 1}),
		ConductedAt: time.Now(),
	}).Error)

	require.ErrorIs(t, svc.Delete(ctx, "u2", free.ID), ErrNotFound, "other users cannot see the profile")
	require.ErrorIs(t, svc.Delete(ctx, "u1", 9999), ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "u1", used.ID), ErrConflict)
	require.NoError(t, svc.Delete(ctx, "u1", free.ID))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, used.ID, list[0].ID)
}
