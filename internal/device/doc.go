// Package device pushes files to, and runs commands on, an Android device
// reached through an ADB server.
//
// The production client drives the adb executable against an explicit
// server address (adb -H host -P port ...), so the host running ghapk does
// not need the device attached locally, only a reachable ADB server.
package device
