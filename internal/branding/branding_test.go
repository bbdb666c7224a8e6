package branding

import "testing"

func TestEnvVar(t *testing.T) {
	if got := EnvVar("org"); got != "ORGBUILD_ORG" {
		t.Errorf("EnvVar(org) = %q, want %q", got, "ORGBUILD_ORG")
	}
}

func TestDefaultBaseDir(t *testing.T) {
	if got := DefaultBaseDir(); got != "./tozsolutions_repos" {
		t.Errorf("DefaultBaseDir() = %q, want %q", got, "./tozsolutions_repos")
	}
}
