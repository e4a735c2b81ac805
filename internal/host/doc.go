// Package host defines the collaborators every alias is built on: the file
// system, the environment, the process runner and the globber.
//
// Aliases never reach for os/exec or the real file system directly. They take
// a *Host and go through its fields, so tests can swap in an afero memory file
// system and the fakes from hosttest.
package host
