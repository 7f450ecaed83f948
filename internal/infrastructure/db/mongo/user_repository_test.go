package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meddetector/credential-gateway/internal/core/domain"
)

func TestToDoc_ProviderCarriesApprovalAndCreation(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := toDoc(&domain.User{
		Username:      "drwho",
		Email:         "who@example.com",
		PasswordHash:  []byte("$2a$hash"),
		Role:          domain.RoleProvider,
		HospitalName:  "General",
		ContactNumber: "555",
		CreatedAt:     created,
	})

	require.NotNil(t, doc.Approved)
	assert.False(t, *doc.Approved)
	require.NotNil(t, doc.CreatedAt)
	assert.Equal(t, created, *doc.CreatedAt)
	assert.Equal(t, "doctor", doc.Role)
}

func TestToDoc_AdminOmitsApproval(t *testing.T) {
	doc := toDoc(&domain.User{Username: "ragu", Email: "ragu@meddetector.com", Role: domain.RoleAdmin})

	assert.Nil(t, doc.Approved)
	assert.Nil(t, doc.CreatedAt)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	_, hasApproved := m["approved"]
	_, hasID := m["_id"]
	assert.False(t, hasApproved)
	assert.False(t, hasID)
}

func TestUserDoc_DecodesStoredLayout(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"_id":            oid,
		"username":       "drwho",
		"email":          "who@example.com",
		"password":       primitive.Binary{Data: []byte("$2b$12$digest")},
		"role":           "doctor",
		"approved":       true,
		"hospital_name":  "General",
		"contact_number": "555",
	})
	require.NoError(t, err)

	var doc userDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	u := doc.toDomain()

	assert.Equal(t, oid.Hex(), u.ID)
	assert.Equal(t, []byte("$2b$12$digest"), u.PasswordHash)
	assert.Equal(t, domain.RoleProvider, u.Role)
	assert.True(t, u.Approved)
	assert.True(t, u.CreatedAt.IsZero())
}

func TestUserDoc_MissingApprovalDecodesFalse(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"username": "legacy", "role": "doctor"})
	require.NoError(t, err)

	var doc userDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))

	assert.False(t, doc.toDomain().Approved)
}
