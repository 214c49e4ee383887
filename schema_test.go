package structmap

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchema(t *testing.T) {
	type subject struct {
		FullName string   `map:""`
		Mail     string   `map:"email_address"`
		Retries  int      `map:",default=3"`
		Host     string   `map:",omitempty"`
		Loose    float64  `map:",ignoreerrors"`
		Custom   string   `map:",converter=upper"`
		Skipped  string   `map:"-"`
		Plain    string
		hidden   string
	}

	sch, err := buildSchema(reflect.TypeOf(subject{}))
	require.NoError(t, err)

	names := make([]string, 0, len(sch.fields))
	for _, f := range sch.fields {
		names = append(names, f.name)
	}

	// Declaration order, sourced fields only.
	assert.Equal(t, []string{"FullName", "Mail", "Retries", "Host", "Loose", "Custom"}, names)

	byName := make(map[string]*field, len(sch.fields))
	for _, f := range sch.fields {
		byName[f.name] = f
	}

	assert.Equal(t, "full_name", byName["FullName"].snakeName)
	assert.Empty(t, byName["FullName"].key)

	assert.Equal(t, "email_address", byName["Mail"].key)

	assert.True(t, byName["Retries"].hasDefault)
	assert.Equal(t, "3", byName["Retries"].defaultLit)

	assert.True(t, byName["Host"].omitEmpty)
	assert.True(t, byName["Loose"].ignoreErrors)
	assert.Equal(t, "upper", byName["Custom"].converter)
}

func TestBuildSchema_UnspecificList(t *testing.T) {
	type subject struct {
		Items []any `map:""`
	}

	_, err := buildSchema(reflect.TypeOf(subject{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnspecificList)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Items", de.Field)
}

func TestBuildSchema_UnknownOption(t *testing.T) {
	type subject struct {
		Name string `map:",frobnicate"`
	}

	_, err := buildSchema(reflect.TypeOf(subject{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frobnicate")
}

func TestSchemaFor_Caches(t *testing.T) {
	type subject struct {
		Name string `map:""`
	}

	a, err := schemaFor(reflect.TypeOf(subject{}))
	require.NoError(t, err)
	b, err := schemaFor(reflect.TypeOf(subject{}))
	require.NoError(t, err)

	assert.Same(t, a, b)
}
