package repository

import (
	"regexp"
	"strings"
	"time"

	"employee-management/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListFilter is the parsed form of GET / parameters.
type ListFilter struct {
	EmployeeID string
	Name       string
	Department string
	JoinedFrom *time.Time
	JoinedTo   *time.Time
}

// keyFilter resolves a path key to either the ObjectID or the employeeId.
func keyFilter(key string) bson.M {
	if primitive.IsValidObjectID(key) {
		oid, _ := primitive.ObjectIDFromHex(key)
		return bson.M{"_id": oid}
	}
	return bson.M{"employeeId": key}
}

// contains builds a case-insensitive, unanchored match for a literal string.
func contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// searchFilter splits name on whitespace: one token matches either name
// field, two or more pin the first token to firstName and the second to
// lastName.
func searchFilter(q models.SearchQuery) bson.M {
	filter := bson.M{}
	if q.EmployeeID != "" {
		filter["employeeId"] = q.EmployeeID
	}
	if q.Department != "" {
		filter["department"] = q.Department
	}

	tokens := strings.Fields(q.Name)
	switch {
	case len(tokens) == 1:
		filter["$or"] = bson.A{
			bson.M{"firstName": contains(tokens[0])},
			bson.M{"lastName": contains(tokens[0])},
		}
	case len(tokens) >= 2:
		filter["firstName"] = contains(tokens[0])
		filter["lastName"] = contains(tokens[1])
	}
	return filter
}

// listFilter matches name as one substring against either name field.
func listFilter(f ListFilter) bson.M {
	filter := bson.M{}
	if f.EmployeeID != "" {
		filter["employeeId"] = f.EmployeeID
	}
	if f.Department != "" {
		filter["department"] = f.Department
	}
	if f.Name != "" {
		filter["$or"] = bson.A{
			bson.M{"firstName": contains(f.Name)},
			bson.M{"lastName": contains(f.Name)},
		}
	}
	if f.JoinedFrom != nil && f.JoinedTo != nil {
		filter["dateOfJoining"] = bson.M{
			"$gte": *f.JoinedFrom,
			"$lte": *f.JoinedTo,
		}
	}
	return filter
}

// updateDocument builds the $set/$unset pair for the fields patch names.
// Optional fields that end up empty are unset so the stored shape matches a
// freshly created document.
func updateDocument(patch models.UpdateEmployeeDTO, merged *models.Employee, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if patch.EmployeeID != nil {
		set["employeeId"] = merged.EmployeeID
	}
	if patch.FirstName != nil {
		set["firstName"] = merged.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = merged.LastName
	}
	if patch.Email != nil {
		set["email"] = merged.Email
	}
	optional := []struct {
		named bool
		field string
		value string
	}{
		{patch.PhoneNumber != nil, "phoneNumber", merged.PhoneNumber},
		{patch.Department != nil, "department", merged.Department},
		{patch.Position != nil, "position", merged.Position},
	}
	for _, o := range optional {
		if !o.named {
			continue
		}
		if o.value == "" {
			unset[o.field] = ""
		} else {
			set[o.field] = o.value
		}
	}
	if patch.DateOfBirth != nil {
		if merged.DateOfBirth == nil {
			unset["dateOfBirth"] = ""
		} else {
			set["dateOfBirth"] = *merged.DateOfBirth
		}
	}
	if patch.DateOfJoining != nil {
		if merged.DateOfJoining == nil {
			unset["dateOfJoining"] = ""
		} else {
			set["dateOfJoining"] = *merged.DateOfJoining
		}
	}
	if patch.Salary != nil && merged.Salary != nil {
		set["salary"] = *merged.Salary
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
