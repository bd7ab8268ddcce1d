// Package hcl provides the hcl loader for HCL native syntax files.
//
// Attributes load as values and blocks as nested mappings keyed by block
// type then labels; repeated blocks with the same key collapse into a
// sequence. Expressions may call a small set of pure functions (upper,
// join, merge, ...). The dangerous capability also exposes the process
// environment as the env object:
//
//	home = env.HOME
//
// Building with the conftree_nohcl tag leaves the hcl name registered as a
// placeholder that reports the loader as not installed.
package hcl
