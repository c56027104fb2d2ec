package jsontools

import (
	"testing"

	"github.com/damian-dev1/json-tools-and-utilities/domain/model"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, text string) any {
	t.Helper()
	v, err := model.Decode(text)
	require.NoError(t, err)
	return v
}

func compact(t *testing.T, v any) string {
	t.Helper()
	s, err := model.Compact(v)
	require.NoError(t, err)
	return s
}
