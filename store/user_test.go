package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medi-route/triage-api/schema"
)

func (s *ReportTestSuite) TestCreateUser() {
	ctx := context.Background()

	user, err := s.store.CreateUser(ctx, schema.User{
		UserID:    "medic-park",
		Email:     " Park@Example.com ",
		FirstName: "민수",
		LastName:  "박",
		Role:      schema.RoleDoctor,
	})
	s.NoError(err)
	s.Equal("park@example.com", user.Email)
	s.Equal(schema.UserStatusActive, user.Status)

	stored, err := s.store.GetUser(ctx, user.ID)
	s.NoError(err)
	s.Equal("medic-park", stored.UserID)
	s.Equal(schema.RoleDoctor, stored.Role)
	s.Empty(stored.Reports)
}

func (s *ReportTestSuite) TestCreateUserDefaultsRole() {
	user, err := s.store.CreateUser(context.Background(), schema.User{UserID: "patient", Email: "patient@example.com"})
	s.NoError(err)
	s.Equal(schema.RoleUser, user.Role)
}

func (s *ReportTestSuite) TestCreateUserTaken() {
	_, err := s.store.CreateUser(context.Background(), schema.User{UserID: "doctor-kim", Email: "new@example.com"})
	s.Equal(ErrUserTaken, err)
}

func (s *ReportTestSuite) TestCreateUserInvalidRole() {
	_, err := s.store.CreateUser(context.Background(), schema.User{UserID: "x", Email: "x@example.com", Role: "nurse"})
	s.Equal(ErrInvalidRole, err)
}

func (s *ReportTestSuite) TestGetUserNotFound() {
	_, err := s.store.GetUser(context.Background(), primitive.NewObjectID())
	s.Equal(ErrUserNotFound, err)
}
