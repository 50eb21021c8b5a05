package common

// GetAccountFromArgs extracts the account name from tool arguments, falling
// back to "default". One credential file exists per account, so this name
// selects which Google identity the tool acts as.
func GetAccountFromArgs(args map[string]any) string {
	if account, ok := args["account"].(string); ok && account != "" {
		return account
	}
	return "default"
}
