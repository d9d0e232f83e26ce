package bidsapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bidsapp"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want bidsapp.Type
	}{
		{"", bidsapp.TypeAny},
		{"any", bidsapp.TypeAny},
		{"text", bidsapp.TypeText},
		{"str", bidsapp.TypeText},
		{"bool", bidsapp.TypeBool},
		{"integer", bidsapp.TypeInt},
		{"number", bidsapp.TypeFloat},
		{"path", bidsapp.TypePath},
		{"directory", bidsapp.TypeDirectory},
		{"file", bidsapp.TypeFile},
		{"medimage/nifti-gz", bidsapp.MustFormatType("medimage/nifti-gz")},
		{"format:application/json", bidsapp.MustFormatType("application/json")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := bidsapp.ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	_, err := bidsapp.ParseType("tensor")
	require.ErrorIs(t, err, bidsapp.ErrInvalidType)
	requireMetadata(t, err, "type", "tensor")

	_, err = bidsapp.ParseType("medimage/unknown")
	require.ErrorIs(t, err, bidsapp.ErrUnknownFormat)

	_, err = bidsapp.ParseType("format")
	require.ErrorIs(t, err, bidsapp.ErrInvalidType)
}

func TestType_Text(t *testing.T) {
	typ := bidsapp.MustFormatType("medimage/nifti-gz-x")
	assert.Equal(t, "format:medimage/nifti-gz-x", typ.String())
	assert.True(t, typ.IsPath())
	assert.False(t, bidsapp.TypeText.IsPath())

	text, err := typ.MarshalText()
	require.NoError(t, err)

	var parsed bidsapp.Type
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, typ, parsed)

	f, ok := parsed.Format()
	require.True(t, ok)
	assert.Equal(t, []string{".nii.gz", ".json"}, f.Extensions)
}

func TestType_ParseValue(t *testing.T) {
	v, err := bidsapp.TypeInt.ParseValue("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = bidsapp.TypeBool.ParseValue("false")
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = bidsapp.TypePath.ParseValue("/data/sub-01")
	require.NoError(t, err)
	assert.Equal(t, "/data/sub-01", v)

	_, err = bidsapp.TypeFloat.ParseValue("lots")
	require.ErrorIs(t, err, bidsapp.ErrInvalidValue)
}

func TestFormats(t *testing.T) {
	nifti, ok := bidsapp.LookupFormat("medimage/nifti-gz")
	require.True(t, ok)
	assert.Equal(t, ".nii.gz", nifti.PrimaryExtension())
	assert.True(t, nifti.Matches("/data/sub-01_T1w.nii.gz"))
	assert.False(t, nifti.Matches("/data/sub-01_T1w.nii"))

	dir, ok := bidsapp.LookupFormat("generic/directory")
	require.True(t, ok)
	assert.True(t, dir.Matches("/data/anything"))

	require.NoError(t, bidsapp.RegisterFormat(bidsapp.Format{Name: "medimage/mgh-gz", Extensions: []string{".mgz"}}))
	typ, err := bidsapp.ParseType("medimage/mgh-gz")
	require.NoError(t, err)
	assert.Equal(t, bidsapp.KindFormat, typ.Kind())

	err = bidsapp.RegisterFormat(bidsapp.Format{Name: "mgz"})
	require.ErrorIs(t, err, bidsapp.ErrUnknownFormat)

	var names []string
	for _, f := range bidsapp.Formats() {
		names = append(names, f.Name)
	}
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "medimage/mgh-gz")
}
