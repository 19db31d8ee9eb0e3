package schemaindex

import (
	"context"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	testlogr "github.com/go-logr/logr/testing"
	"github.com/schemascope/schemascope/internal/log"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestBuild(t *testing.T) {
	ctx := context.Background()
	ctx = log.WithLogger(ctx, testlogr.NewTestLogger(t))

	schema := gqlparser.MustLoadSchema(&ast.Source{
		Name: "schema.graphqls",
		Input: heredoc.Doc(`
			type Query {
			  user(id: ID!): User
			  users(first: Int, after: String): [User!]!
			  now: DateTime
			}

			type User {
			  id: ID!
			  name: String
			  nickname: String @deprecated(reason: "use name")
			  friends: [User!]
			}

			scalar DateTime
		`),
	})

	idx := Build(ctx, schema)

	if !idx.Has("Query") || !idx.Has("User") {
		t.Fatalf("Query and User should be indexed, got %v", idx.TypeNames())
	}
	if idx.Has("DateTime") {
		t.Error("scalar types should not be indexed")
	}
	if idx.Has("__Schema") {
		t.Error("introspection types should not be indexed")
	}

	userFields := idx.Fields("User")
	if len(userFields) != 4 {
		t.Fatalf("User should have 4 fields, got %d", len(userFields))
	}
	if userFields[3].Name != "friends" || userFields[3].Type != "[User!]" {
		t.Errorf("friends field raw type should keep wrappers, got %q", userFields[3].Type)
	}
	var deprecated *FieldInfo
	for _, field := range userFields {
		if field.Name == "nickname" {
			deprecated = field
		}
	}
	if deprecated == nil || !deprecated.IsDeprecated {
		t.Error("nickname should be marked deprecated")
	}

	op, ok := idx.RootOperation("user")
	if !ok {
		t.Fatal("root operation user should exist")
	}
	if op.ReturnType != "User" {
		t.Errorf("ReturnType = %q, expect User", op.ReturnType)
	}
	if len(op.Args) != 1 || op.Args[0].Name != "id" || op.Args[0].Type != "ID!" {
		t.Errorf("args should carry declared types verbatim, got %+v", op.Args[0])
	}

	op, _ = idx.RootOperation("users")
	if len(op.Args) != 2 || op.Args[0].Type != "Int" || op.Args[1].Type != "String" {
		t.Errorf("users args mismatch: %+v", op.Args)
	}
	if op.ReturnType != "User" {
		t.Errorf("list return type should reduce to base name, got %q", op.ReturnType)
	}
}
