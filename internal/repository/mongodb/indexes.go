package mongodb

import (
	"context"
	"fmt"

	"github.com/suhana-bhanu/attendance-system/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	employeesCollection   = "employees"
	attendancesCollection = "attendances"

	employeeEmailIndex = "employees_email_unique"
	employeeCodeIndex  = "employees_employee_code_unique"
	attendanceDayIndex = "attendances_employee_date_unique"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// (employee_id, date) index is what makes check-in upserts race free.
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	employees := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(employeeEmailIndex).SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "employee_code", Value: 1}},
			Options: options.Index().SetName(employeeCodeIndex).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}},
		},
	}
	if _, err := db.Database.Collection(employeesCollection).Indexes().CreateMany(ctx, employees); err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}

	attendances := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employee_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName(attendanceDayIndex).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "date", Value: -1}},
		},
	}
	if _, err := db.Database.Collection(attendancesCollection).Indexes().CreateMany(ctx, attendances); err != nil {
		return fmt.Errorf("failed to create attendance indexes: %w", err)
	}

	return nil
}
