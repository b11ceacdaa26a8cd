// Package notify is the single source of user-facing wording. Handlers never
// build notice text themselves.
package notify

import (
	"fmt"
	"strings"
)

// Level is the severity shown by the console.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice codes.
const (
	CodeLoadFailed       = "load_failed"
	CodeSessionMissing   = "session_missing"
	CodeNotFound         = "not_found"
	CodeConfirmRequired  = "confirm_required"
	CodeUnauthorizedRole = "unauthorized_role"
	CodeForbidden        = "forbidden"
	CodeLoginFailed      = "login_failed"
	CodeSuperseded       = "superseded"
	CodeInvalid          = "invalid"
	CodeTimeLogRequired  = "time_log_required"
	CodeNotAssignable    = "not_assignable"
	CodeNoLogs           = "no_logs"
	CodeRateLimited      = "rate_limited"
	CodeRemoteFailed     = "remote_failed"
	CodeDone             = "done"
)

// Notice is a message for the console to show the user.
type Notice struct {
	Level   Level  `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (n Notice) String() string {
	return n.Message
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LoadFailed reports a failed collaborator read for what is being loaded.
func LoadFailed(what string) Notice {
	return Notice{Level: LevelError, Code: CodeLoadFailed, Message: fmt.Sprintf("Failed to load %s.", what)}
}

// ActionFailed reports a failed mutation. A collaborator detail replaces the generic text.
func ActionFailed(action, entity, detail string) Notice {
	msg := fmt.Sprintf("Failed to %s %s.", action, entity)
	if detail != "" {
		msg = detail
	}
	return Notice{Level: LevelError, Code: CodeRemoteFailed, Message: msg}
}

// Done reports a successful mutation, e.g. Done("task", "updated").
func Done(entity, verb string) Notice {
	return Notice{Level: LevelSuccess, Code: CodeDone, Message: fmt.Sprintf("%s %s successfully.", capitalize(entity), verb)}
}

// SessionMissing reports an absent or unusable session key.
func SessionMissing(key string) Notice {
	msg := "Invalid session. Please login again."
	if key != "" {
		msg = fmt.Sprintf("Invalid session (%s missing). Please login again.", key)
	}
	return Notice{Level: LevelError, Code: CodeSessionMissing, Message: msg}
}

// NotFound reports a missing primary entity.
func NotFound(entity string) Notice {
	return Notice{Level: LevelError, Code: CodeNotFound, Message: fmt.Sprintf("%s not found!", capitalize(entity))}
}

// ConfirmDelete asks the user to confirm a destructive call.
func ConfirmDelete(entity string) Notice {
	return Notice{Level: LevelWarning, Code: CodeConfirmRequired, Message: fmt.Sprintf("Are you sure you want to delete this %s?", entity)}
}

// UnauthorizedRole is shown when a role has no console.
func UnauthorizedRole() Notice {
	return Notice{Level: LevelError, Code: CodeUnauthorizedRole, Message: "Unauthorized role access."}
}

// Forbidden is shown when a role requests a view outside its grants.
func Forbidden() Notice {
	return Notice{Level: LevelError, Code: CodeForbidden, Message: "You do not have access to this screen."}
}

// LoginFailed is shown on rejected credentials.
func LoginFailed(detail string) Notice {
	msg := "Login failed. Please check your credentials."
	if detail != "" {
		msg = detail
	}
	return Notice{Level: LevelError, Code: CodeLoginFailed, Message: msg}
}

// Superseded tells a caller its load was replaced by a newer one.
func Superseded(view string) Notice {
	return Notice{Level: LevelInfo, Code: CodeSuperseded, Message: fmt.Sprintf("A newer %s request replaced this one.", view)}
}

// Invalid reports a malformed request.
func Invalid(msg string) Notice {
	return Notice{Level: LevelError, Code: CodeInvalid, Message: msg}
}

// TimeLogRequired is shown when a status change needs a time log.
func TimeLogRequired() Notice {
	return Notice{Level: LevelError, Code: CodeTimeLogRequired, Message: "Please fill in all required log time details before completing the task."}
}

// NotAssignable is shown when an assignee is not on the task's project.
func NotAssignable() Notice {
	return Notice{Level: LevelError, Code: CodeNotAssignable, Message: "Selected employee is not assigned to this project."}
}

// NoLogs is shown when a report export has nothing to write.
func NoLogs() Notice {
	return Notice{Level: LevelInfo, Code: CodeNoLogs, Message: "No logs found for the selected filters."}
}

// ExportRangeRequired is shown when an export lacks a date range.
func ExportRangeRequired() Notice {
	return Invalid("Please select a valid date range to export logs.")
}

// EndBeforeStart is shown for an inverted date range.
func EndBeforeStart() Notice {
	return Invalid("End date cannot be earlier than start date.")
}

// UploadFailed is shown when the collaborator rejects a file.
func UploadFailed() Notice {
	return Notice{Level: LevelError, Code: CodeRemoteFailed, Message: "File upload failed. Please try again."}
}

// RateLimited is shown when login attempts are throttled.
func RateLimited() Notice {
	return Notice{Level: LevelWarning, Code: CodeRateLimited, Message: "Too many login attempts. Please wait and try again."}
}
