// Package download coordinates SteamCMD download jobs.
//
// The Manager owns the bounded-concurrency scheduler, the FIFO queue of
// pending jobs, the bounded history of finished jobs, and one supervisor per
// running job. Supervisors spawn the external tool, translate its noisy
// output into job state, and report terminal outcomes back to the scheduler.
// All shared state is guarded by a single manager mutex; supervisors never
// touch job fields without it.
package download
