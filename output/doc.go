// Package output serializes structured command results in a
// user-selected format: a bordered table (pretty), JSON or YAML. Format
// implements pflag.Value so a CLI can expose the choice as a flag, and
// the Item/List split lets single values serialize without an array
// wrapper.
package output
