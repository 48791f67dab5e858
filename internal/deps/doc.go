// Package deps checks the external requirements of a steamfetch
// installation: the SteamCMD binary, directory permissions, and free disk
// space. The daemon runs these checks at startup and the CLI exposes them
// through the doctor command.
package deps
