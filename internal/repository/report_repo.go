package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindpath/internal/model"
)

// ReportRepo handles MongoDB operations for assessment reports
type ReportRepo interface {
	SaveReport(ctx context.Context, report *model.AssessmentReport) error
	GetReport(ctx context.Context, toolID, studentID string) (*model.AssessmentReport, error)
	DeleteReport(ctx context.Context, toolID, studentID string) error
	SaveComparison(ctx context.Context, report *model.ComparisonReport) error
}

type reportRepo struct {
	reports     *mongo.Collection
	comparisons *mongo.Collection
}

// NewReportRepo creates a new report repository
func NewReportRepo(db *mongo.Database) ReportRepo {
	return &reportRepo{
		reports:     db.Collection("assessment_reports"),
		comparisons: db.Collection("comparison_reports"),
	}
}

func (r *reportRepo) SaveReport(ctx context.Context, report *model.AssessmentReport) error {
	filter := bson.M{"toolId": report.ToolID, "studentId": report.StudentID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.reports.ReplaceOne(ctx, filter, report, opts)
	return err
}

func (r *reportRepo) GetReport(ctx context.Context, toolID, studentID string) (*model.AssessmentReport, error) {
	var report model.AssessmentReport
	err := r.reports.FindOne(ctx, bson.M{"toolId": toolID, "studentId": studentID}).Decode(&report)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepo) DeleteReport(ctx context.Context, toolID, studentID string) error {
	_, err := r.reports.DeleteOne(ctx, bson.M{"toolId": toolID, "studentId": studentID})
	return err
}

func (r *reportRepo) SaveComparison(ctx context.Context, report *model.ComparisonReport) error {
	_, err := r.comparisons.InsertOne(ctx, report)
	return err
}
