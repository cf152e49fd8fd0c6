// Package config provides configuration management for boardci using Viper.
//
// # Sources
//
// In increasing precedence: built-in defaults, a boardci.yaml file (searched
// in the current directory, then <XDG config home>/boardci/), environment
// variables with the BOARDCI_ prefix, and command-line flags bound by the
// commands package. The workspace additionally honours $GITHUB_WORKSPACE.
//
// # Configuration File
//
//	version: 1
//	cli: arduino-cli
//	sketch_extension: .ino
//	platforms: [rak_platforms]
//	additional_urls:
//	  - https://example.com/package_custom_index.json
//	boards:
//	  - alias: feather52840
//	    fqbn: adafruit:nrf52:feather52840
//	groups:
//	  - alias: nightly
//	    members: [feather52840, rak4631]
//
// Boards and groups extend the built-in platform table; an entry reusing a
// built-in alias replaces it. They are lists rather than maps because Viper
// lower-cases map keys and aliases are case-sensitive.
//
// # Validation
//
//	errs := config.Validate(cfg)
//	for _, e := range errs {
//	    fmt.Println(e)
//	}
package config
