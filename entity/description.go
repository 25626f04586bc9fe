package entity

// ApplicationType is the type of an OPC UA application.
type ApplicationType int

// Application types.
const (
	ApplicationServer ApplicationType = iota
	ApplicationClient
	ApplicationClientAndServer
	ApplicationDiscoveryServer
)

var appTypeStr = []string{
	ApplicationServer:          "server",
	ApplicationClient:          "client",
	ApplicationClientAndServer: "client_and_server",
	ApplicationDiscoveryServer: "discovery_server",
}

func (t ApplicationType) String() string {
	if t < 0 || int(t) >= len(appTypeStr) {
		return "unknown"
	}
	return appTypeStr[t]
}

// SecurityMode is the message security mode of an endpoint.
type SecurityMode int

// Security modes.
const (
	SecurityInvalid SecurityMode = iota
	SecurityNone
	SecuritySign
	SecuritySignAndEncrypt
)

var secModeStr = []string{
	SecurityInvalid:        "invalid",
	SecurityNone:           "none",
	SecuritySign:           "sign",
	SecuritySignAndEncrypt: "sign_and_encrypt",
}

func (m SecurityMode) String() string {
	if m < 0 || int(m) >= len(secModeStr) {
		return "unknown"
	}
	return secModeStr[m]
}

// ApplicationDescription describes a server found by FindServers.
type ApplicationDescription struct {
	ApplicationURI string
	ProductURI     string
	Name           string
	Type           ApplicationType
	DiscoveryURLs  []string
}

// Map converts the description into its wire map.
func (d *ApplicationDescription) Map() map[string]interface{} {
	urls := make([]interface{}, len(d.DiscoveryURLs))
	for i, u := range d.DiscoveryURLs {
		urls[i] = u
	}
	return map[string]interface{}{
		"server":          d.ApplicationURI,
		"name":            d.Name,
		"application_uri": d.ApplicationURI,
		"product_uri":     d.ProductURI,
		"type":            d.Type.String(),
		"discovery_url":   urls,
	}
}

// EndpointDescription describes an endpoint returned by GetEndpoints.
type EndpointDescription struct {
	EndpointURL         string
	TransportProfileURI string
	SecurityMode        SecurityMode
	SecurityPolicyURI   string
	SecurityLevel       uint8
}

// Map converts the description into its wire map.
func (d *EndpointDescription) Map() map[string]interface{} {
	return map[string]interface{}{
		"endpoint_url":          d.EndpointURL,
		"transport_profile_uri": d.TransportProfileURI,
		"security_mode":         d.SecurityMode.String(),
		"security_profile_uri":  d.SecurityPolicyURI,
		"security_level":        uint32(d.SecurityLevel),
	}
}

// Well known URIs.
const (
	TransportProfileBinary = "http://opcfoundation.org/UA-Profile/Transport/uatcp-uasc-uabinary"
	SecurityPolicyNone     = "http://opcfoundation.org/UA/SecurityPolicy#None"
)
