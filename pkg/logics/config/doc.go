/*
Package config loads evaluator settings from YAML or JSON.

# Files

	# logics.yaml
	max_iterations: 1000
	scoped_comprehensions: true
	log_level: debug
	language: tr
	functions: [upper, lower, len, join]
	vars:
	  greeting: hello

	s, err := config.FromFile("logics.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	prog, err := logics.Compile(src, logics.WithSettings(s))

Missing keys take their values from Default. FromFile, FromYAML and FromJSON
validate what they load; errors from Validate wrap ErrInvalid.

# Typed access

Config wraps the decoded document and returns defaults for missing keys or
mismatched types:

	cfg := config.New(map[string]any{"max_iterations": 10.0})
	cfg.Int("max_iterations", 4096) // 10
	cfg.Bool("tracing", false)      // false
*/
package config
