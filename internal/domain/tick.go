package domain

// Tick is one step of the system's logical clock. All rental timing is
// expressed in ticks; wall-clock time never enters the core.
type Tick uint64

// Balance is an amount of currency in indivisible units.
type Balance int64
