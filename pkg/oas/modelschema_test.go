package oas

import (
	"context"
	"testing"
	"time"

	"github.com/parkingwang/oasgen/pkg/store/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type columnsFunc func(ctx context.Context, table string) []database.Column

func (f columnsFunc) FetchColumns(ctx context.Context, table string) []database.Column {
	return f(ctx, table)
}

func staticColumns(want string, cols ...database.Column) database.ColumnFetcher {
	return columnsFunc(func(_ context.Context, table string) []database.Column {
		if table != want {
			return []database.Column{}
		}
		return cols
	})
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func userColumns() database.ColumnFetcher {
	return staticColumns("users",
		database.Column{Name: "id", DataType: "int", Nullable: false},
		database.Column{Name: "name", DataType: "varchar", Nullable: true, Default: strPtr("'x'")},
	)
}

func TestModelSchemaBuilder_Build(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterTable(`App\Models\User`, "users")

	s, err := NewModelSchemaBuilder(reg, userColumns()).Build(context.Background(), `App\Models\User`, ModelConfig{})
	require.NoError(t, err)

	assert.Equal(t, "User", s.Title)
	assert.Equal(t, "User Model (Auto Generated)", s.Description)
	assert.Equal(t, []string{"id"}, s.Required)
	assert.Equal(t, &Schema{
		Description: "id",
		Type:        TypeInteger,
		Format:      FormatInt32,
		Nullable:    boolPtr(false),
	}, s.Properties["id"])
	assert.Equal(t, &Schema{
		Description: "name",
		Type:        TypeString,
		Nullable:    boolPtr(true),
		Default:     "x",
	}, s.Properties["name"])
}

func TestModelSchemaBuilder_Hidden(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterTable("models.Account", "accounts", "a")

	cols := staticColumns("accounts",
		database.Column{Name: "a", DataType: "int"},
		database.Column{Name: "b", DataType: "int"},
		database.Column{Name: "c", DataType: "int", Nullable: true},
		database.Column{Name: "d", DataType: "text"},
	)
	s, err := NewModelSchemaBuilder(reg, cols).Build(context.Background(), "models.Account", ModelConfig{Hidden: []string{"b", "c"}})
	require.NoError(t, err)

	assert.Len(t, s.Properties, 1)
	assert.Contains(t, s.Properties, "d")
	assert.Equal(t, []string{"d"}, s.Required)
}

func TestModelSchemaBuilder_NoColumns(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterTable("Ghost", "ghosts")

	for name, cols := range map[string]database.ColumnFetcher{
		"failed query": columnsFunc(func(context.Context, string) []database.Column { return []database.Column{} }),
		"no fetcher":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := NewModelSchemaBuilder(reg, cols).Build(context.Background(), "Ghost", ModelConfig{})
			require.NoError(t, err)
			assert.Equal(t, "Ghost", s.Title)
			assert.Empty(t, s.Properties)
			assert.NotNil(t, s.Properties)
			assert.Equal(t, []string{}, s.Required)
		})
	}
}

func TestModelSchemaBuilder_ModelNotFound(t *testing.T) {
	_, err := NewModelSchemaBuilder(NewRegistry(nil), userColumns()).Build(context.Background(), "Missing", ModelConfig{})
	var notFound *ModelNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Model)
	assert.EqualError(t, err, "oas: could not find model: Missing")
}

func TestModelSchemaBuilder_BuildAll(t *testing.T) {
	reg := NewRegistry(nil)
	reg.RegisterTable(`App\Models\User`, "users")
	reg.RegisterTable("shop/Order", "orders")
	b := NewModelSchemaBuilder(reg, userColumns())

	all, err := b.BuildAll(context.Background(), map[string]ModelConfig{
		`App\Models\User`: {},
		"shop/Order":      {},
	})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all["User"].Properties, 2)
	assert.Empty(t, all["Order"].Properties)

	all, err = b.BuildAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, all)

	_, err = b.BuildAll(context.Background(), map[string]ModelConfig{"User": {}, `App\Models\User`: {}})
	assert.ErrorAs(t, err, new(*ModelNotFoundError))
}

type member struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Password string `json:"-"`
	Token    string `json:"token"`
}

func (member) HiddenFields() []string { return []string{"token"} }

type invoice struct {
	ID     uint
	Amount float64
}

func (invoice) TableName() string { return "billing_invoices" }

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register("models.Member", &member{}))
	require.NoError(t, reg.Register("models.Invoice", invoice{}))

	m, err := reg.Resolve("models.Member")
	require.NoError(t, err)
	assert.Equal(t, "members", m.Table)
	assert.ElementsMatch(t, []string{"password", "token"}, m.Hidden)

	m, err = reg.Resolve("models.Invoice")
	require.NoError(t, err)
	assert.Equal(t, "billing_invoices", m.Table)
	assert.Empty(t, m.Hidden)

	assert.Error(t, reg.Register("bad", 42))
}

type auditFields struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type article struct {
	auditFields
	ID       int64             `json:"id" binding:"required" comment:"primary key"`
	Title    string            `json:"title" binding:"required"`
	Draft    *bool             `json:"draft"`
	Tags     []string          `json:"tags" gorm:"-"`
	Meta     map[string]string `json:"meta" gorm:"-"`
	Secret   string            `json:"secret"`
	Internal string            `json:"-"`
}

func (article) HiddenFields() []string { return []string{"secret"} }

func TestModelSchemaBuilder_FromModel(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register("models.Article", &article{}))

	for name, cols := range map[string]database.ColumnFetcher{
		"no fetcher":    nil,
		"missing table": userColumns(),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := NewModelSchemaBuilder(reg, cols).Build(context.Background(), "models.Article", ModelConfig{Hidden: []string{"meta"}})
			require.NoError(t, err)

			assert.Equal(t, "Article", s.Title)
			assert.Equal(t, []string{"id", "title"}, s.Required)
			assert.ElementsMatch(t, []string{"created_at", "updated_at", "id", "title", "draft", "tags"}, keys(s.Properties))
			assert.Equal(t, &Schema{Type: TypeInteger, Format: FormatInt64, Description: "primary key"}, s.Properties["id"])
			assert.Equal(t, &Schema{Type: TypeString, Format: FormatDateTime}, s.Properties["created_at"])
			assert.Equal(t, TypeBoolean, s.Properties["draft"].Type)
			assert.Equal(t, &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}, s.Properties["tags"])
		})
	}

	reg.RegisterTable("models.Article", "articles")
	s, err := NewModelSchemaBuilder(reg, nil).Build(context.Background(), "models.Article", ModelConfig{})
	require.NoError(t, err)
	assert.Empty(t, s.Properties)
}

func TestModelSchemaBuilder_ColumnsOverModel(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, reg.Register("models.Member", &member{}))

	cols := staticColumns("members", database.Column{Name: "id", DataType: "bigint"})
	s, err := NewModelSchemaBuilder(reg, cols).Build(context.Background(), "models.Member", ModelConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, keys(s.Properties))
	assert.Equal(t, FormatInt64, s.Properties["id"].Format)
}

func keys(m map[string]*Schema) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestShortName(t *testing.T) {
	for id, want := range map[string]string{
		`App\Models\User`:          "User",
		"models.User":              "User",
		"example.com/models/Order": "Order",
		"Plain":                    "Plain",
	} {
		assert.Equal(t, want, ShortName(id), id)
	}
}
