package metrics

const (
	LoopCyclesH = "The total number of control cycles completed"
	LoopCyclesN = "rtloop_cycles_total"

	LoopDeadlineMissesH = "The total number of cycles that exceeded their deadline"
	LoopDeadlineMissesN = "rtloop_deadline_misses_total"

	LoopSkippedCyclesH = "The total number of cycles skipped because no sensor sample was available"
	LoopSkippedCyclesN = "rtloop_skipped_cycles_total"

	LoopAvgLatencyH = "The running average cycle latency in seconds"
	LoopAvgLatencyN = "rtloop_cycle_latency_avg_seconds"

	LoopControlOutputH = "The most recent control output applied to the actuator"
	LoopControlOutputN = "rtloop_control_output"

	LoopMeasuredValueH = "The most recent measured process value"
	LoopMeasuredValueN = "rtloop_measured_value"
)
