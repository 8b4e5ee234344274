package password

// commonPasswords is a compact excerpt of widely breached passwords.
// Replace via New with a NotCommon variant backed by a full corpus if a
// larger list is needed.
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range commonList {
		commonPasswords[p] = struct{}{}
	}
}

var commonList = []string{
	"password", "password1", "password123", "passw0rd", "p@ssw0rd",
	"123456", "1234567", "12345678", "123456789", "1234567890",
	"qwerty", "qwerty123", "qwertyuiop", "asdfghjkl", "zxcvbnm",
	"abc123", "abcd1234", "letmein", "welcome", "welcome1",
	"monkey", "dragon", "sunshine", "princess", "football",
	"baseball", "superman", "batman", "master", "shadow",
	"iloveyou", "trustno1", "starwars", "whatever", "freedom",
	"admin", "admin123", "root", "toor", "login",
	"secret", "test123", "changeme", "default", "internet",
	"111111", "000000", "121212", "654321", "696969",
	"michael", "jordan", "harley", "hunter", "ranger",
	"charlie", "daniel", "jessica", "ashley", "nicole",
	"soccer", "hockey", "killer", "george", "computer",
	"pepper", "cookie", "summer", "flower", "banana",
}
