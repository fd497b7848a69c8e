// Package config provides configuration management for fixturectl.
//
// Configuration is loaded from multiple YAML sources and merged in order, with later sources
// overriding earlier ones:
//
//  1. Default configuration (GetDefaultConfig)
//  2. User configuration (~/.config/fixturectl/config.yaml)
//  3. Project configuration (./.fixturectl/config.yaml)
//
// Zero values never override a lower layer, except navigator.detailLevel which is tracked as a
// pointer so that an explicit 0 wins. Command line flags are applied on top by the cmd package.
//
// # Configuration Structure
//
//	run:
//	  order: declared        # or "lexical"
//	  hookTimeout: 30s       # per hook and per test body; 0 disables
//	  fixtures: ["SelfTest.*"]
//	report:
//	  format: console        # "quiet" or "json"
//	  path: ./reports        # directory for detailed JSON reports
//	navigator:
//	  detailLevel: 1         # 0 status, 1 error types, 2 full errors
//	stress:
//	  seed: 0                # 0 seeds from the wall clock
//	  maxDelay: 5ms
//	  workers: 8
//	  iterations: 1000
//	logging:
//	  level: info
//
// LoadConfig validates the merged result and rejects unknown names and out-of-range values.
package config
