package threatintel

import "fmt"

// abuseCategories maps AbuseIPDB report category codes to names
var abuseCategories = map[int]string{
	3:  "Fraud Orders",
	4:  "DDoS Attack",
	5:  "FTP Brute-Force",
	6:  "Ping of Death",
	7:  "Phishing",
	8:  "Fraud VoIP",
	9:  "Open Proxy",
	10: "Web Spam",
	11: "Email Spam",
	12: "Blog Spam",
	13: "VPN IP",
	14: "Port Scan",
	15: "Hacking",
	16: "SQL Injection",
	17: "Spoofing",
	18: "Brute-Force",
	19: "Bad Web Bot",
	20: "Exploited Host",
	21: "Web App Attack",
	22: "SSH",
	23: "IoT Targeted",
}

// wellKnownPorts names the services commonly found on Shodan-indexed ports
var wellKnownPorts = map[int]string{
	21:    "FTP",
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	80:    "HTTP",
	110:   "POP3",
	143:   "IMAP",
	443:   "HTTPS",
	445:   "SMB",
	3306:  "MySQL",
	3389:  "RDP",
	5432:  "PostgreSQL",
	5900:  "VNC",
	6379:  "Redis",
	8080:  "HTTP Alt",
	8443:  "HTTPS Alt",
	27017: "MongoDB",
}

// CategoryName returns the AbuseIPDB category label, "Unknown (N)" if unmapped
func CategoryName(code int) string {
	if name, ok := abuseCategories[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown (%d)", code)
}

// CategoryNames maps codes preserving order
func CategoryNames(codes []int) []string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = CategoryName(c)
	}
	return names
}

// PortName returns the service usually listening on port, or "Unknown"
func PortName(port int) string {
	if name, ok := wellKnownPorts[port]; ok {
		return name
	}
	return "Unknown"
}
