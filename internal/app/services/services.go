// Package services holds the business logic of StrataOps.
//
// Services defined in this package:
//   - ReminderService: owns the derived compliance reminder set (the
//     projection over ComputeReminders)
//   - ActionLogService: append-only, soft-deletable audit trail keyed by
//     reminder ID
//   - PropertyService: portfolio and meeting maintenance, next-AGM syncing
//   - ContractorService: contractor directory
//   - UserService: operator directory
//
// Persistence is reached through the store interfaces declared alongside
// each service (PropertyStore, MeetingStore, ActionCommentStore, UserStore,
// ContractorStore); the pgx implementations live in the repositories
// package and are wired in bootstrap.
package services
