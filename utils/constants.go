// File: utils/constants.go
package utils

import "time"

// ChatHistoryPrefix is the prefix used for Redis chat history keys.
const ChatHistoryPrefix = "chat:history:"

// ChatHistoryTTL is the time-to-live for cached conversation history.
const ChatHistoryTTL = 30 * time.Minute

// ChatQuotaPrefix is the prefix used for per-caller chat quota counters.
const ChatQuotaPrefix = "chat:quota:"
