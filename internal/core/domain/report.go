package domain

import "time"

// DigestRecord is the last recorded digest of an app definition.
type DigestRecord struct {
	App       string    `json:"app,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	ImageTag  string    `json:"image_tag,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Status compares a definition with its recorded digest.
type Status string

const (
	// StatusUntracked means no comparison was made.
	StatusUntracked Status = ""
	// StatusNew means no digest was recorded for the app.
	StatusNew Status = "new"
	// StatusUnchanged means the recorded digest matches.
	StatusUnchanged Status = "unchanged"
	// StatusChanged means the definition changed since the digest was recorded.
	StatusChanged Status = "changed"
)

// AppReport describes one loaded definition.
type AppReport struct {
	File       string        `yaml:"file"`
	Name       string        `yaml:"name"`
	ImageTag   string        `yaml:"image_tag"`
	Executable string        `yaml:"executable,omitempty"`
	Command    string        `yaml:"command"`
	Digest     string        `yaml:"digest"`
	Status     Status        `yaml:"status,omitempty"`
	Inputs     []FieldReport `yaml:"inputs"`
	Outputs    []FieldReport `yaml:"outputs"`
	Xor        [][]string    `yaml:"xor,omitempty"`
}

// FieldReport describes one field of a definition.
type FieldReport struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Position  int    `yaml:"position,omitempty"`
	ArgStr    string `yaml:"argstr,omitempty"`
	Default   string `yaml:"default,omitempty"`
	Mandatory bool   `yaml:"mandatory,omitempty"`
	Help      string `yaml:"help,omitempty"`
}

// SchemaReport describes the fields every definition starts from.
type SchemaReport struct {
	Inputs  []FieldReport `yaml:"inputs"`
	Outputs []FieldReport `yaml:"outputs"`
}
