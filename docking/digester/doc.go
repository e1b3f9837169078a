// Package digester records the sha256 digest of a rendered engine
// configuration in a ".digest" sidecar file so a run can detect that the
// file changed after it was prepared.
package digester
