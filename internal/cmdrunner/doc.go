// Package cmdrunner abstracts subprocess execution for the external
// collaborators (git, pip, systemctl).
//
// The Runner interface is the seam used by tests; ExecRunner is the real
// implementation on top of os/exec.
package cmdrunner
