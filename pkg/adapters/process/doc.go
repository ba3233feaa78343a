// Package process runs the settings-database builder as a child process.
package process
