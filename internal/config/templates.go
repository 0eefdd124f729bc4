package config

import (
	"fmt"
	"os"
)

// Template returns a starter configuration.
func Template() string {
	return registryTemplate
}

// WriteTemplate writes Template to path, refusing to clobber unless asked.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(registryTemplate), 0o600)
}

const registryTemplate = `# eppctl registry endpoints. Select one with -registry NAME.

[registry.verisign]
host = "epp.example.net"
port = 700
connect_timeout = "5s"
read_timeout = "30s"
write_timeout = "30s"
max_frame_bytes = 4194304
ext_uris = [
  "http://www.verisign-grs.com/epp/namestoreExt-1.1",
  "http://www.verisign.com/epp/sync-1.0",
  "urn:ietf:params:xml:ns:rgp-1.0",
]

[registry.verisign.tls]
enabled = true
ca_file = "ca.pem"
cert_file = "client.pem"
key_file = "client.key"
server_name = "epp.example.net"
insecure_skip_verify = false

[registry.local]
host = "127.0.0.1"
port = 7000
`
