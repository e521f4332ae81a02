package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medi-route/triage-api/schema"
)

var (
	doctorID = primitive.NewObjectID()
	otherID  = primitive.NewObjectID()
)

type ReportTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	testDatabase *mongo.Database
	store        MongoStore
}

func NewReportTestSuite(connURI, dbName string) *ReportTestSuite {
	return &ReportTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ReportTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Fatal("invalid test suite configuration")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		s.T().Fatalf("create mongo client with error: %s", err)
	}

	if err = mongoClient.Connect(context.Background()); nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err.Error())
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(s.mongoClient, s.testDBName)
}

func (s *ReportTestSuite) SetupTest() {
	// every test starts from a clean database
	if err := s.CleanMongoDB(); err != nil {
		s.T().Fatal(err)
	}
	schema.NewMongoDBIndexer(s.mongoClient, s.testDBName).IndexAll()
	if err := s.LoadMongoDBFixtures(); err != nil {
		s.T().Fatal(err)
	}
}

func (s *ReportTestSuite) TearDownSuite() {
	_ = s.CleanMongoDB()
	s.store.Close()
}

// LoadMongoDBFixtures will preload fixtures into test mongodb
func (s *ReportTestSuite) LoadMongoDBFixtures() error {
	ctx := context.Background()

	_, err := s.testDatabase.Collection(schema.UserCollection).InsertMany(ctx, []interface{}{
		schema.User{
			ID:      doctorID,
			UserID:  "doctor-kim",
			Email:   "kim@example.com",
			Role:    schema.RoleDoctor,
			Status:  schema.UserStatusActive,
			Reports: []primitive.ObjectID{},
		},
		schema.User{
			ID:      otherID,
			UserID:  "doctor-lee",
			Email:   "lee@example.com",
			Role:    schema.RoleDoctor,
			Status:  schema.UserStatusActive,
			Reports: []primitive.ObjectID{},
		},
	})
	return err
}

// CleanMongoDB drop the whole test mongodb
func (s *ReportTestSuite) CleanMongoDB() error {
	return s.testDatabase.Drop(context.Background())
}

func (s *ReportTestSuite) TestCreateReport() {
	ctx := context.Background()

	report, err := s.store.CreateReport(ctx, doctorID, "서울 중구 세종대로 110", "가슴 통증과 호흡 곤란")
	s.NoError(err)
	s.False(report.IsSevere)
	s.Empty(report.Destination)
	s.Nil(report.EstimatedTime)
	s.WithinDuration(time.Now(), report.IsCreated, time.Minute)

	user, err := s.store.GetUser(ctx, doctorID)
	s.NoError(err)
	s.Equal([]primitive.ObjectID{report.ID}, user.Reports)

	stored, err := s.store.GetReport(ctx, report.ID)
	s.NoError(err)
	s.Equal(report.PatientLocation, stored.PatientLocation)
	s.Equal(report.Symptom, stored.Symptom)
	s.True(report.IsCreated.Equal(stored.IsCreated))
}

func (s *ReportTestSuite) TestCreateReportUnknownUser() {
	_, err := s.store.CreateReport(context.Background(), primitive.NewObjectID(), "서울 중구", "두통")
	s.Equal(ErrUserNotFound, err)

	count, err := s.testDatabase.Collection(schema.ReportCollection).CountDocuments(context.Background(), bson.M{})
	s.NoError(err)
	s.Equal(int64(0), count)
}

func (s *ReportTestSuite) TestListReports() {
	ctx := context.Background()

	first, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "첫 번째 신고입니다. 증상이 아주 길게 적혀 있습니다.")
	s.NoError(err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.store.CreateReport(ctx, doctorID, "서울 종로구", "두통")
	s.NoError(err)
	_, err = s.store.CreateReport(ctx, otherID, "부산 중구", "복통")
	s.NoError(err)

	reports, err := s.store.ListReports(ctx, doctorID)
	s.NoError(err)
	s.Len(reports, 2)
	s.Equal(second.ID, reports[0].ID)
	s.Equal(first.ID, reports[1].ID)
	s.Equal("두통", reports[0].Symptom)
	s.Equal(schema.SymptomPreviewLength, len([]rune(reports[1].Symptom)))
}

func (s *ReportTestSuite) TestListReportsUnknownUser() {
	_, err := s.store.ListReports(context.Background(), primitive.NewObjectID())
	s.Equal(ErrUserNotFound, err)
}

func (s *ReportTestSuite) TestGetReportNotFound() {
	_, err := s.store.GetReport(context.Background(), primitive.NewObjectID())
	s.Equal(ErrReportNotFound, err)
}

func (s *ReportTestSuite) TestUpdateSeverity() {
	ctx := context.Background()

	older, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "의식 저하")
	s.NoError(err)
	time.Sleep(5 * time.Millisecond)
	newer, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "의식 저하")
	s.NoError(err)

	criteria := schema.ReportCriteria{User: doctorID, PatientLocation: "서울 중구", Symptom: "의식 저하"}
	updated, err := s.store.UpdateSeverity(ctx, criteria, true)
	s.NoError(err)
	s.Equal(newer.ID, updated.ID)
	s.True(updated.IsSevere)

	// repeating the update changes nothing
	again, err := s.store.UpdateSeverity(ctx, criteria, true)
	s.NoError(err)
	s.Equal(newer.ID, again.ID)

	stored, err := s.store.GetReport(ctx, older.ID)
	s.NoError(err)
	s.False(stored.IsSevere)

	count, err := s.testDatabase.Collection(schema.ReportCollection).CountDocuments(ctx, bson.M{})
	s.NoError(err)
	s.Equal(int64(2), count)
}

func (s *ReportTestSuite) TestUpdateSeverityNoMatch() {
	ctx := context.Background()

	_, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "의식 저하")
	s.NoError(err)

	_, err = s.store.UpdateSeverity(ctx, schema.ReportCriteria{User: otherID, PatientLocation: "서울 중구", Symptom: "의식 저하"}, true)
	s.Equal(ErrReportNotFound, err)

	count, err := s.testDatabase.Collection(schema.ReportCollection).CountDocuments(ctx, bson.M{})
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *ReportTestSuite) TestUpdateSeverityByID() {
	ctx := context.Background()

	older, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "의식 저하")
	s.NoError(err)
	time.Sleep(5 * time.Millisecond)
	newer, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "의식 저하")
	s.NoError(err)

	updated, err := s.store.UpdateSeverityByID(ctx, older.ID, doctorID, true)
	s.NoError(err)
	s.Equal(older.ID, updated.ID)
	s.True(updated.IsSevere)

	stored, err := s.store.GetReport(ctx, newer.ID)
	s.NoError(err)
	s.False(stored.IsSevere)

	_, err = s.store.UpdateSeverityByID(ctx, older.ID, otherID, false)
	s.Equal(ErrReportNotFound, err)
}

func (s *ReportTestSuite) TestUpdateDestinationAndEstimatedTime() {
	ctx := context.Background()

	report, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "골절")
	s.NoError(err)

	s.NoError(s.store.UpdateDestination(ctx, report.ID, doctorID, "서울대학교병원"))
	s.Equal(ErrReportNotFound, s.store.UpdateDestination(ctx, report.ID, otherID, "다른병원"))
	s.NoError(s.store.UpdateEstimatedTime(ctx, report.ID, 12))
	s.Equal(ErrReportNotFound, s.store.UpdateEstimatedTime(ctx, primitive.NewObjectID(), 12))

	stored, err := s.store.GetReport(ctx, report.ID)
	s.NoError(err)
	s.Equal("서울대학교병원", stored.Destination)
	s.Equal(12, *stored.EstimatedTime)
}

func (s *ReportTestSuite) TestUpdateReport() {
	ctx := context.Background()

	report, err := s.store.CreateReport(ctx, doctorID, "서울 중구", "골절")
	s.NoError(err)

	symptom := "다리 골절, 출혈"
	severe := true
	updated, err := s.store.UpdateReport(ctx, report.ID, doctorID, schema.ReportPatch{
		Symptom:  &symptom,
		IsSevere: &severe,
	})
	s.NoError(err)
	s.Equal(symptom, updated.Symptom)
	s.True(updated.IsSevere)
	s.Equal("서울 중구", updated.PatientLocation)

	_, err = s.store.UpdateReport(ctx, report.ID, otherID, schema.ReportPatch{Symptom: &symptom})
	s.Equal(ErrReportNotFound, err)

	_, err = s.store.UpdateReport(ctx, report.ID, doctorID, schema.ReportPatch{})
	s.Equal(ErrEmptyPatch, err)
}

func TestReportTestSuite(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("Skip mongo tests due to missing TEST_MONGO_URI")
	}
	suite.Run(t, NewReportTestSuite(uri, "test-triage-db"))
}
