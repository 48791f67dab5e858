package steamcmd

import (
	"reflect"
	"testing"

	"steamfetch/internal/job"
)

func TestBuildArgsAnonymous(t *testing.T) {
	args := BuildArgs(job.Request{AppID: "730", ValidateInstall: true}, "/downloads/app_730")
	want := []string{"+login", "anonymous", "+force_install_dir", "/downloads/app_730", "+app_update", "730", "validate", "+quit"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected argv: got %v want %v", args, want)
	}
}

func TestBuildArgsWithCredentials(t *testing.T) {
	req := job.Request{AppID: "570", Username: "user", Password: "secret", GuardCode: "ABCDE"}
	args := BuildArgs(req, "/downloads/app_570")
	want := []string{"+login", "user", "secret", "ABCDE", "+force_install_dir", "/downloads/app_570", "+app_update", "570", "+quit"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected argv: got %v want %v", args, want)
	}
}

func TestBuildArgsSkipsValidateWhenDisabled(t *testing.T) {
	args := BuildArgs(job.Request{AppID: "10"}, "/d")
	for _, arg := range args {
		if arg == "validate" {
			t.Fatal("validate flag must be omitted")
		}
	}
}
