// Package job defines the download job data model shared by the scheduler,
// the process supervisor, and the control surfaces.
//
// A Job carries an immutable submission request plus the mutable runtime
// status the supervisor maintains while the download runs. Once a job reaches
// a terminal status it is frozen and only copies of it circulate. Credentials
// never appear on the Job itself; they travel on the Request and are consumed
// when the external process is spawned.
package job
