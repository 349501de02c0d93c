package domain

// BotStatus is the gateway snapshot shown on the dashboard.
type BotStatus struct {
	Status        string `json:"status"`
	PingMS        int64  `json:"ping"`
	Guilds        int    `json:"guilds"`
	Users         int    `json:"users"`
	UptimeSeconds int64  `json:"uptime"`
}
