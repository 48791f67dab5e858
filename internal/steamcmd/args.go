package steamcmd

import (
	"strings"

	"steamfetch/internal/job"
)

// BuildArgs produces the fully specified SteamCMD argument vector for a
// download request. The order mirrors the tool's script semantics: login
// first, then install directory, then the app update with an optional
// validate pass, then quit.
func BuildArgs(req job.Request, installDir string) []string {
	args := make([]string, 0, 8)
	if req.Anonymous() {
		args = append(args, "+login", "anonymous")
	} else {
		args = append(args, "+login", req.Username, req.Password)
		if code := strings.TrimSpace(req.GuardCode); code != "" {
			args = append(args, code)
		}
	}
	args = append(args, "+force_install_dir", installDir, "+app_update", strings.TrimSpace(req.AppID))
	if req.ValidateInstall {
		args = append(args, "validate")
	}
	args = append(args, "+quit")
	return args
}
