package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/suhana-bhanu/attendance-system/internal/domain/attendance"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/database"
	"github.com/suhana-bhanu/attendance-system/internal/pkg/worktime"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attendanceDocument struct {
	ID          string     `bson:"_id"`
	EmployeeID  string     `bson:"employee_id"`
	Date        time.Time  `bson:"date"`
	CheckIn     *time.Time `bson:"check_in"`
	CheckOut    *time.Time `bson:"check_out"`
	Status      string     `bson:"status"`
	HoursWorked float64    `bson:"hours_worked"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

func (d attendanceDocument) toEntity() attendance.Attendance {
	return attendance.Attendance{
		ID:          d.ID,
		EmployeeID:  d.EmployeeID,
		Date:        d.Date,
		CheckIn:     d.CheckIn,
		CheckOut:    d.CheckOut,
		Status:      attendance.Status(d.Status),
		HoursWorked: d.HoursWorked,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type attendanceRepository struct {
	records   *mongo.Collection
	employees *mongo.Collection
}

func NewAttendanceRepository(db *database.MongoDB) attendance.AttendanceRepository {
	return &attendanceRepository{
		records:   db.Database.Collection(attendancesCollection),
		employees: db.Database.Collection(employeesCollection),
	}
}

// CheckIn implements attendance.AttendanceRepository.
// The filter only matches a record without a check-in, so an upsert against a
// checked-in day collides with the unique (employee_id, date) index.
func (a *attendanceRepository) CheckIn(ctx context.Context, employeeID string, date time.Time, at time.Time, status attendance.Status) (attendance.Attendance, error) {
	now := time.Now().UTC()

	filter := bson.M{
		"employee_id": employeeID,
		"date":        worktime.DateKey(date),
		"check_in":    nil,
	}
	update := bson.M{
		"$set": bson.M{
			"check_in":   at,
			"status":     string(status),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":          uuid.New().String(),
			"check_out":    nil,
			"hours_worked": 0.0,
			"created_at":   now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc attendanceDocument
	if err := a.records.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check in: %w", err)
	}

	return doc.toEntity(), nil
}

// CheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CheckOut(ctx context.Context, id string, at time.Time, hoursWorked float64, status attendance.Status) (attendance.Attendance, error) {
	filter := bson.M{
		"_id":       id,
		"check_in":  bson.M{"$ne": nil},
		"check_out": nil,
	}
	update := bson.M{
		"$set": bson.M{
			"check_out":    at,
			"hours_worked": hoursWorked,
			"status":       string(status),
			"updated_at":   time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc attendanceDocument
	if err := a.records.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check out: %w", err)
	}

	return doc.toEntity(), nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"date":        worktime.DateKey(date),
	}

	var doc attendanceDocument
	if err := a.records.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	att := doc.toEntity()
	return &att, nil
}

// List implements attendance.AttendanceRepository.
// Employee fields are joined with a second query on the ids found.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	query := bson.M{}

	if filter.EmployeeID != "" {
		query["employee_id"] = filter.EmployeeID
	}
	if filter.Department != "" {
		ids, err := a.employeeIDsInDepartment(ctx, filter.Department)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []attendance.Attendance{}, nil
		}
		if filter.EmployeeID != "" {
			query["employee_id"] = bson.M{"$eq": filter.EmployeeID, "$in": ids}
		} else {
			query["employee_id"] = bson.M{"$in": ids}
		}
	}

	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = worktime.DateKey(filter.From)
	}
	if !filter.To.IsZero() {
		dateRange["$lt"] = worktime.DateKey(filter.To)
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := a.records.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}

	records := make([]attendance.Attendance, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.toEntity())
	}

	if err := a.attachEmployees(ctx, records); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return derefName(records[i].EmployeeName) < derefName(records[j].EmployeeName)
	})

	return records, nil
}

func (a *attendanceRepository) employeeIDsInDepartment(ctx context.Context, department string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := a.employees.Find(ctx, bson.M{"department": department}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list department employees: %w", err)
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode department employees: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

// attachEmployees fills the joined employee fields. Records whose employee no
// longer exists are left without them.
func (a *attendanceRepository) attachEmployees(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.EmployeeID]; ok {
			continue
		}
		seen[r.EmployeeID] = struct{}{}
		ids = append(ids, r.EmployeeID)
	}

	cursor, err := a.employees.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}

	var docs []employeeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return fmt.Errorf("failed to decode employees: %w", err)
	}

	byID := make(map[string]employeeDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}

	for i := range records {
		emp, ok := byID[records[i].EmployeeID]
		if !ok {
			continue
		}
		name, email, code, dept := emp.Name, emp.Email, emp.EmployeeCode, emp.Department
		records[i].EmployeeName = &name
		records[i].EmployeeEmail = &email
		records[i].EmployeeCode = &code
		records[i].Department = &dept
	}

	return nil
}

// MarkAbsent implements attendance.AttendanceRepository.
// Days that already have a record are left untouched.
func (a *attendanceRepository) MarkAbsent(ctx context.Context, employeeIDs []string, date time.Time) (int64, error) {
	if len(employeeIDs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	key := worktime.DateKey(date)

	models := make([]mongo.WriteModel, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		model := mongo.NewUpdateOneModel().
			SetFilter(bson.M{"employee_id": id, "date": key}).
			SetUpdate(bson.M{
				"$setOnInsert": bson.M{
					"_id":          uuid.New().String(),
					"check_in":     nil,
					"check_out":    nil,
					"status":       string(attendance.StatusAbsent),
					"hours_worked": 0.0,
					"created_at":   now,
					"updated_at":   now,
				},
			}).
			SetUpsert(true)
		models = append(models, model)
	}

	result, err := a.records.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to mark absent: %w", err)
	}

	return result.UpsertedCount, nil
}

func derefName(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
