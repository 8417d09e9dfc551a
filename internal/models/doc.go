// Package models defines the core domain records for Billed.
//
// A Bill is one expense-report record submitted by an employee. Its Date and
// Status fields hold raw wire values; display formatting is the job of the
// format package and only ever replaces fields on copies handed to views.
//
// A User is the locally persisted session record. It is written once at login
// and read at every navigation and every submission to attribute ownership.
package models
