package tools

import (
	"context"
	"encoding/json"

	"github.com/dogukanakin/local-mcp/internal/people"
)

type AddPersonInput struct {
	Name       string `json:"name" jsonschema_description:"The person's name."`
	Age        int    `json:"age" jsonschema_description:"The person's age (positive integer)."`
	Profession string `json:"profession" jsonschema_description:"The person's profession."`
}

type ListPeopleInput struct {
	Profession string `json:"profession,omitempty" jsonschema_description:"Only return people with this exact profession."`
	MinAge     int    `json:"min_age,omitempty" jsonschema_description:"Only return people at least this old."`
	MaxAge     int    `json:"max_age,omitempty" jsonschema_description:"Only return people at most this old."`
	OrderBy    string `json:"order_by,omitempty" jsonschema_description:"Sort column: id, name, age, profession or created_at (default id)."`
	Descending bool   `json:"descending,omitempty" jsonschema_description:"Sort in descending order."`
	Limit      int    `json:"limit,omitempty" jsonschema_description:"Maximum rows to return."`
}

type PeopleTableInfoInput struct{}

var (
	addPersonInputSchema       = GenerateSchema[AddPersonInput]()
	listPeopleInputSchema      = GenerateSchema[ListPeopleInput]()
	peopleTableInfoInputSchema = GenerateSchema[PeopleTableInfoInput]()
)

// PeopleTools returns the tool definitions for the PostgreSQL people
// service. All commands are parameterized; there is deliberately no tool
// accepting raw SQL.
func PeopleTools(svc *people.Service) []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "add_person",
			Description: "Add a single person to the people table with a name, age and profession. IDs and timestamps are assigned by the database.",
			InputSchema: addPersonInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in AddPersonInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(svc.AddPerson(ctx, in.Name, in.Age, in.Profession)), nil
			},
		},
		{
			Name:        "list_people",
			Description: "List people, optionally filtered by profession or age range and sorted by a named column.",
			InputSchema: listPeopleInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				var in ListPeopleInput
				if errStr, ok := decodeInput(input, &in); !ok {
					return errStr, nil
				}
				return run(svc.List(ctx, people.Filter{
					Profession: in.Profession,
					MinAge:     in.MinAge,
					MaxAge:     in.MaxAge,
					OrderBy:    in.OrderBy,
					Descending: in.Descending,
					Limit:      in.Limit,
				})), nil
			},
		},
		{
			Name:        "people_table_info",
			Description: "Describe the people table: columns, types and current record count.",
			InputSchema: peopleTableInfoInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				return run(svc.Info(ctx)), nil
			},
		},
	}
}
