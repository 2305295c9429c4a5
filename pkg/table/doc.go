// Package table implements the tabular dataset type the pipeline accumulates
// and the key-based merge used to combine measure-type result sets.
package table
