package responder

// DefaultProfile is the profile name used when a request selects none.
const DefaultProfile = "default"

// Profile holds per-caller behavior switches.
type Profile struct {
	// Stateful enforces resource existence on GET, DELETE and PATCH and
	// surfaces cascade rejections.
	Stateful bool `yaml:"stateful" json:"stateful"`

	// AlwaysError forces every matched request to fail with this HTTP
	// status. Zero disables it.
	AlwaysError int `yaml:"alwaysError" json:"alwaysError"`

	// ExampleGeneration persists every synthesized exchange as an example
	// file next to the spec.
	ExampleGeneration bool `yaml:"exampleGeneration" json:"exampleGeneration"`
}
