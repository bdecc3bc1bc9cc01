package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Beacon Allele Lookup Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to this GA4GH Beacon v1 API!"
	SERVICE_DESCRIPTION ServiceInfo = "Genomic variant lookup service implementing the GA4GH Beacon v1 protocol."
	SERVICE_CONTACT     ServiceInfo = "mailto:support@beacon.local"

	SERVICE_ARTIFACT    ServiceInfo = "beacon"
	SERVICE_API_VERSION ServiceInfo = "v1.0.0"
	SERVICE_VERSION     ServiceInfo = "0.0.1"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.ga4gh:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
