package config

// CategoryWeights orders command categories in /help output, lowest first.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🧪 Simulation":   10,
	"🛠️ Maintenance": 20,
}
