package bidsapp

// Names of the fields every BIDS App definition carries.
const (
	FieldDatasetPath      = "dataset_path"
	FieldOutputPath       = "output_path"
	FieldAnalysisLevel    = "analysis_level"
	FieldParticipantLabel = "participant_label"
	FieldFlags            = "flags"
	FieldWorkDir          = "work_dir"
	FieldSetupCompleted   = "setup_completed"
	FieldCompleted        = "completed"

	// FieldImageTag and FieldExecutable are synthesized by the builder and reserved.
	FieldImageTag   = "image_tag"
	FieldExecutable = "executable"
)

// AppSchema is the fixed command-line contract of a BIDS App:
//
//	<app> <dataset_path> <output_path> <analysis_level> [--participant-label <label>] [--work-dir <dir>] [flags...]
type AppSchema struct {
	Inputs  []Arg
	Outputs []Out
}

// Schema returns a fresh copy of the fixed BIDS App fields.
func Schema() AppSchema {
	return AppSchema{
		Inputs: []Arg{
			{
				Name:     FieldDatasetPath,
				Type:     TypeDirectory,
				Help:     "Path to BIDS dataset in the container",
				Position: 1,
				ArgStr:   "'{dataset_path}'",
			},
			{
				Name:     FieldOutputPath,
				Type:     TypePath,
				Help:     "Directory where outputs will be written in the container",
				Position: 2,
				ArgStr:   "'{output_path}'",
			},
			{
				Name:     FieldAnalysisLevel,
				Type:     TypeText,
				Help:     "The analysis level the app will be run at",
				Position: 3,
			},
			{
				Name:     FieldParticipantLabel,
				Type:     TypeText,
				Help:     "The IDs to include in the analysis",
				Position: 4,
				ArgStr:   "--participant-label ",
				Optional: true,
			},
			{
				Name:     FieldFlags,
				Type:     TypeText,
				Help:     "Additional flags to pass to the app",
				Position: -1,
				Optional: true,
			},
			{
				Name:     FieldWorkDir,
				Type:     TypePath,
				Help:     "Directory where the nipype temporary working directories will be stored",
				ArgStr:   "--work-dir '{work_dir}'",
				Optional: true,
			},
			{
				Name:     FieldSetupCompleted,
				Type:     TypeBool,
				Help:     "Dummy field to ensure that the BIDS dataset construction completes first",
				Optional: true,
			},
		},
		Outputs: []Out{
			{
				Name:     FieldCompleted,
				Type:     TypeBool,
				Help:     "a simple flag to indicate app has completed",
				Callable: func() any { return true },
			},
		},
	}
}

// SchemaInputNames returns the names of the fixed inputs in declaration order.
func SchemaInputNames() []string {
	s := Schema()
	names := make([]string, len(s.Inputs))
	for i, a := range s.Inputs {
		names[i] = a.Name
	}
	return names
}

// SchemaOutputNames returns the names of the fixed outputs.
func SchemaOutputNames() []string {
	s := Schema()
	names := make([]string, len(s.Outputs))
	for i, o := range s.Outputs {
		names[i] = o.Name
	}
	return names
}

func isReserved(name string) bool {
	return name == FieldImageTag || name == FieldExecutable
}
