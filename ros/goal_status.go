package ros

// Goal status codes, as reported by actionlib servers.
const (
	GoalPending    uint8 = 0
	GoalActive     uint8 = 1
	GoalPreempted  uint8 = 2
	GoalSucceeded  uint8 = 3
	GoalAborted    uint8 = 4
	GoalRejected   uint8 = 5
	GoalPreempting uint8 = 6
	GoalRecalling  uint8 = 7
	GoalRecalled   uint8 = 8
	GoalLost       uint8 = 9
)

var goalStatusNames = map[uint8]string{
	GoalPending:    "PENDING",
	GoalActive:     "ACTIVE",
	GoalPreempted:  "PREEMPTED",
	GoalSucceeded:  "SUCCEEDED",
	GoalAborted:    "ABORTED",
	GoalRejected:   "REJECTED",
	GoalPreempting: "PREEMPTING",
	GoalRecalling:  "RECALLING",
	GoalRecalled:   "RECALLED",
	GoalLost:       "LOST",
}

// GoalStatusString names a goal status code.
func GoalStatusString(status uint8) string {
	if name, ok := goalStatusNames[status]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminalStatus reports whether a goal in this status will not change again.
func IsTerminalStatus(status uint8) bool {
	switch status {
	case GoalPreempted, GoalSucceeded, GoalAborted, GoalRejected, GoalRecalled, GoalLost:
		return true
	}
	return false
}
