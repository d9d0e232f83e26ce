package bidsapp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bidsapp"
)

func mockApp(t *testing.T, opts ...bidsapp.Option) *bidsapp.Definition {
	t.Helper()
	opts = append([]bidsapp.Option{bidsapp.WithExecutable("/launch.sh")}, opts...)
	def, err := bidsapp.DefineFromIdentifier("bids/mock-app:1.0", opts...)
	require.NoError(t, err)
	return def
}

func baseValues() bidsapp.Values {
	return bidsapp.Values{
		bidsapp.FieldDatasetPath:   "/data/bids",
		bidsapp.FieldOutputPath:    "/data/out",
		bidsapp.FieldAnalysisLevel: "participant",
	}
}

func TestArgs_PositionalContract(t *testing.T) {
	def := mockApp(t)

	values := baseValues()
	values[bidsapp.FieldParticipantLabel] = "01"

	args, err := def.Args(values)
	require.NoError(t, err)

	// $0 is the executable, $1..$5 what a BIDS App entrypoint receives.
	require.Len(t, args, 6)
	assert.Equal(t, "/launch.sh", args[0])
	assert.Equal(t, "/data/bids", args[1])
	assert.Equal(t, "/data/out", args[2])
	assert.Equal(t, "participant", args[3])
	assert.Equal(t, "--participant-label", args[4])
	assert.Equal(t, "01", args[5])
}

func TestArgs_OptionalFields(t *testing.T) {
	def := mockApp(t, bidsapp.WithInputs(
		bidsapp.Arg{Name: "nthreads", Type: bidsapp.TypeInt, ArgStr: "--nthreads"}.WithDefault(4),
		bidsapp.Arg{Name: "fs_no_reconall", Type: bidsapp.TypeBool, ArgStr: "--fs-no-reconall"},
		bidsapp.Arg{Name: "skip_bids_validation", Type: bidsapp.TypeBool, ArgStr: "--skip-bids-validation", Optional: true},
	))

	values := baseValues()
	values[bidsapp.FieldWorkDir] = "/scratch/work dir"
	values[bidsapp.FieldFlags] = "--output-spaces MNI152NLin2009cAsym --low-mem"
	values[bidsapp.FieldSetupCompleted] = true
	values["fs_no_reconall"] = true
	values["skip_bids_validation"] = false

	args, err := def.Args(values)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/launch.sh", "/data/bids", "/data/out", "participant",
		"--work-dir", "/scratch/work dir",
		"--nthreads", "4",
		"--fs-no-reconall",
		"--output-spaces", "MNI152NLin2009cAsym", "--low-mem",
	}, args)
}

func TestCommandLine_Quoting(t *testing.T) {
	def := mockApp(t, bidsapp.WithInputs(
		bidsapp.Arg{Name: "label", Type: bidsapp.TypeText, ArgStr: "--label", Optional: true},
	))

	values := baseValues()
	values[bidsapp.FieldDatasetPath] = "/data/my bids"
	values["label"] = "a b"

	line, err := def.CommandLine(values)
	require.NoError(t, err)
	assert.Equal(t, "/launch.sh '/data/my bids' '/data/out' participant --label 'a b'", line)
}

func TestArgs_Head(t *testing.T) {
	t.Run("image entrypoint", func(t *testing.T) {
		def, err := bidsapp.DefineFromIdentifier("nipreps/fmriprep:23.1.0")
		require.NoError(t, err)

		args, err := def.Args(baseValues())
		require.NoError(t, err)
		assert.Equal(t, "nipreps/fmriprep:23.1.0", args[0])
	})

	t.Run("executable value overrides", func(t *testing.T) {
		def := mockApp(t)
		values := baseValues()
		values[bidsapp.FieldExecutable] = "/opt/other"

		args, err := def.Args(values)
		require.NoError(t, err)
		assert.Equal(t, "/opt/other", args[0])
	})

	t.Run("image tag value without executable", func(t *testing.T) {
		def, err := bidsapp.DefineFromIdentifier("nipreps/fmriprep:23.1.0")
		require.NoError(t, err)
		values := baseValues()
		values[bidsapp.FieldImageTag] = "nipreps/fmriprep:24.0.0"

		args, err := def.Args(values)
		require.NoError(t, err)
		assert.Equal(t, "nipreps/fmriprep:24.0.0", args[0])
	})
}

func TestCheckValues(t *testing.T) {
	def := mockApp(t,
		bidsapp.WithInputs(
			bidsapp.Arg{Name: "t1w", Type: bidsapp.TypeFile, Optional: true},
			bidsapp.Arg{Name: "t1w_dir", Type: bidsapp.TypeDirectory, Optional: true},
			bidsapp.Arg{Name: "fast", Type: bidsapp.TypeBool, ArgStr: "--fast"},
			bidsapp.Arg{Name: "slow", Type: bidsapp.TypeBool, ArgStr: "--slow"},
		),
		bidsapp.WithXor("t1w", "t1w_dir", bidsapp.XorNone),
		bidsapp.WithXor("fast", "slow"),
	)

	tests := []struct {
		name     string
		values   func() bidsapp.Values
		sentinel error
		metaKey  string
		metaVal  any
	}{
		{
			name: "valid",
			values: func() bidsapp.Values {
				v := baseValues()
				v["fast"] = true
				return v
			},
		},
		{
			name: "missing mandatory",
			values: func() bidsapp.Values {
				v := baseValues()
				delete(v, bidsapp.FieldAnalysisLevel)
				v["fast"] = true
				return v
			},
			sentinel: bidsapp.ErrMissingValue,
			metaKey:  "field",
			metaVal:  bidsapp.FieldAnalysisLevel,
		},
		{
			name: "unknown field",
			values: func() bidsapp.Values {
				v := baseValues()
				v["fast"] = true
				v["bogus"] = 1
				return v
			},
			sentinel: bidsapp.ErrUnknownField,
			metaKey:  "field",
			metaVal:  "bogus",
		},
		{
			name: "both set",
			values: func() bidsapp.Values {
				v := baseValues()
				v["fast"] = true
				v["t1w"] = "/data/t1.nii.gz"
				v["t1w_dir"] = "/data/anat"
				return v
			},
			sentinel: bidsapp.ErrXorViolation,
			metaKey:  "fields",
			metaVal:  "t1w,t1w_dir",
		},
		{
			name: "none set",
			values: func() bidsapp.Values {
				return baseValues()
			},
			sentinel: bidsapp.ErrXorViolation,
			metaKey:  "fields",
			metaVal:  "fast,slow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := def.CheckValues(tt.values())
			if tt.sentinel == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.sentinel)
			requireMetadata(t, err, tt.metaKey, tt.metaVal)

			_, err = def.CommandLine(tt.values())
			require.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestCheckValues_MandatoryBool(t *testing.T) {
	def := mockApp(t, bidsapp.WithInputs(bidsapp.Arg{Name: "skip_bids_validation", Type: bidsapp.TypeBool, ArgStr: "--skip"}))

	values := baseValues()
	err := def.CheckValues(values)
	require.ErrorIs(t, err, bidsapp.ErrMissingValue)
	requireMetadata(t, err, "field", "skip_bids_validation")

	values["skip_bids_validation"] = false
	require.NoError(t, def.CheckValues(values))

	args, err := def.Args(values)
	require.NoError(t, err)
	assert.NotContains(t, args, "--skip")
}

func TestArgs_UnbalancedQuote(t *testing.T) {
	def := mockApp(t)

	values := baseValues()
	values[bidsapp.FieldDatasetPath] = "/data/o'neil"

	_, err := def.Args(values)
	require.ErrorIs(t, err, bidsapp.ErrInvalidValue)
	requireMetadata(t, err, "command_line", "/launch.sh '/data/o'neil' '/data/out' participant")
}

func TestParseValues(t *testing.T) {
	def := mockApp(t, bidsapp.WithInputs(
		bidsapp.Arg{Name: "nthreads", Type: bidsapp.TypeInt, ArgStr: "--nthreads", Optional: true},
		bidsapp.Arg{Name: "mem_gb", Type: bidsapp.TypeFloat, ArgStr: "--mem-gb", Optional: true},
		bidsapp.Arg{Name: "low_mem", Type: bidsapp.TypeBool, ArgStr: "--low-mem"}.WithDefault(false),
	))

	values, err := def.ParseValues(map[string]string{
		"dataset_path": "/data",
		"nthreads":     "8",
		"mem_gb":       "15.5",
		"low_mem":      "true",
	})
	require.NoError(t, err)
	assert.Equal(t, bidsapp.Values{
		"dataset_path": "/data",
		"nthreads":     int64(8),
		"mem_gb":       15.5,
		"low_mem":      true,
	}, values)

	_, err = def.ParseValues(map[string]string{"nthreads": "eight"})
	require.ErrorIs(t, err, bidsapp.ErrInvalidValue)
	requireMetadata(t, err, "field", "nthreads")

	_, err = def.ParseValues(map[string]string{"nope": "1"})
	require.ErrorIs(t, err, bidsapp.ErrUnknownField)
}
