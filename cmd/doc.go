// Package cmd contains the command-line utilities of activelearn. qbc runs query-by-committee experiments
// over a pool and test set and writes a learning curve per selection strategy.
package cmd
