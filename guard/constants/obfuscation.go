package constant

// ObfuscatedValue replaces the value of sensitive keys in logs, spans and reports.
const ObfuscatedValue = "********"
