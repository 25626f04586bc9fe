package ua

import (
	"errors"
	"fmt"
)

// StatusCode is an OPC UA status code. It implements error, so library status
// failures can be returned directly.
type StatusCode uint32

// Severity bits.
const (
	severityMask      StatusCode = 0xC0000000
	severityUncertain StatusCode = 0x40000000
	severityBad       StatusCode = 0x80000000
)

// ErrUnknownStatus is returned when a mnemonic is not found in the status
// table.
var ErrUnknownStatus = errors.New("Unknown status mnemonic")

// Status codes.
const (
	StatusGood                                    StatusCode = 0x00000000
	StatusUncertain                               StatusCode = 0x40000000
	StatusBad                                     StatusCode = 0x80000000
	StatusBadUnexpectedError                      StatusCode = 0x80010000
	StatusBadInternalError                        StatusCode = 0x80020000
	StatusBadOutOfMemory                          StatusCode = 0x80030000
	StatusBadResourceUnavailable                  StatusCode = 0x80040000
	StatusBadCommunicationError                   StatusCode = 0x80050000
	StatusBadEncodingError                        StatusCode = 0x80060000
	StatusBadDecodingError                        StatusCode = 0x80070000
	StatusBadEncodingLimitsExceeded               StatusCode = 0x80080000
	StatusBadRequestTooLarge                      StatusCode = 0x80B80000
	StatusBadResponseTooLarge                     StatusCode = 0x80B90000
	StatusBadUnknownResponse                      StatusCode = 0x80090000
	StatusBadTimeout                              StatusCode = 0x800A0000
	StatusBadServiceUnsupported                   StatusCode = 0x800B0000
	StatusBadShutdown                             StatusCode = 0x800C0000
	StatusBadServerNotConnected                   StatusCode = 0x800D0000
	StatusBadServerHalted                         StatusCode = 0x800E0000
	StatusBadNothingToDo                          StatusCode = 0x800F0000
	StatusBadTooManyOperations                    StatusCode = 0x80100000
	StatusBadTooManyMonitoredItems                StatusCode = 0x80DB0000
	StatusBadDataTypeIdUnknown                    StatusCode = 0x80110000
	StatusBadCertificateInvalid                   StatusCode = 0x80120000
	StatusBadSecurityChecksFailed                 StatusCode = 0x80130000
	StatusBadCertificatePolicyCheckFailed         StatusCode = 0x81140000
	StatusBadCertificateTimeInvalid               StatusCode = 0x80140000
	StatusBadCertificateIssuerTimeInvalid         StatusCode = 0x80150000
	StatusBadCertificateHostNameInvalid           StatusCode = 0x80160000
	StatusBadCertificateUriInvalid                StatusCode = 0x80170000
	StatusBadCertificateUseNotAllowed             StatusCode = 0x80180000
	StatusBadCertificateIssuerUseNotAllowed       StatusCode = 0x80190000
	StatusBadCertificateUntrusted                 StatusCode = 0x801A0000
	StatusBadCertificateRevocationUnknown         StatusCode = 0x801B0000
	StatusBadCertificateIssuerRevocationUnknown   StatusCode = 0x801C0000
	StatusBadCertificateRevoked                   StatusCode = 0x801D0000
	StatusBadCertificateIssuerRevoked             StatusCode = 0x801E0000
	StatusBadCertificateChainIncomplete           StatusCode = 0x810D0000
	StatusBadUserAccessDenied                     StatusCode = 0x801F0000
	StatusBadIdentityTokenInvalid                 StatusCode = 0x80200000
	StatusBadIdentityTokenRejected                StatusCode = 0x80210000
	StatusBadSecureChannelIdInvalid               StatusCode = 0x80220000
	StatusBadInvalidTimestamp                     StatusCode = 0x80230000
	StatusBadNonceInvalid                         StatusCode = 0x80240000
	StatusBadSessionIdInvalid                     StatusCode = 0x80250000
	StatusBadSessionClosed                        StatusCode = 0x80260000
	StatusBadSessionNotActivated                  StatusCode = 0x80270000
	StatusBadSubscriptionIdInvalid                StatusCode = 0x80280000
	StatusBadRequestHeaderInvalid                 StatusCode = 0x802A0000
	StatusBadTimestampsToReturnInvalid            StatusCode = 0x802B0000
	StatusBadRequestCancelledByClient             StatusCode = 0x802C0000
	StatusBadTooManyArguments                     StatusCode = 0x80E50000
	StatusBadLicenseExpired                       StatusCode = 0x810E0000
	StatusBadLicenseLimitsExceeded                StatusCode = 0x810F0000
	StatusBadLicenseNotAvailable                  StatusCode = 0x81100000
	StatusGoodSubscriptionTransferred             StatusCode = 0x002D0000
	StatusGoodCompletesAsynchronously             StatusCode = 0x002E0000
	StatusGoodOverload                            StatusCode = 0x002F0000
	StatusGoodClamped                             StatusCode = 0x00300000
	StatusBadNoCommunication                      StatusCode = 0x80310000
	StatusBadWaitingForInitialData                StatusCode = 0x80320000
	StatusBadNodeIdInvalid                        StatusCode = 0x80330000
	StatusBadNodeIdUnknown                        StatusCode = 0x80340000
	StatusBadAttributeIdInvalid                   StatusCode = 0x80350000
	StatusBadIndexRangeInvalid                    StatusCode = 0x80360000
	StatusBadIndexRangeNoData                     StatusCode = 0x80370000
	StatusBadDataEncodingInvalid                  StatusCode = 0x80380000
	StatusBadDataEncodingUnsupported              StatusCode = 0x80390000
	StatusBadNotReadable                          StatusCode = 0x803A0000
	StatusBadNotWritable                          StatusCode = 0x803B0000
	StatusBadOutOfRange                           StatusCode = 0x803C0000
	StatusBadNotSupported                         StatusCode = 0x803D0000
	StatusBadNotFound                             StatusCode = 0x803E0000
	StatusBadObjectDeleted                        StatusCode = 0x803F0000
	StatusBadNotImplemented                       StatusCode = 0x80400000
	StatusBadMonitoringModeInvalid                StatusCode = 0x80410000
	StatusBadMonitoredItemIdInvalid               StatusCode = 0x80420000
	StatusBadMonitoredItemFilterInvalid           StatusCode = 0x80430000
	StatusBadMonitoredItemFilterUnsupported       StatusCode = 0x80440000
	StatusBadFilterNotAllowed                     StatusCode = 0x80450000
	StatusBadStructureMissing                     StatusCode = 0x80460000
	StatusBadEventFilterInvalid                   StatusCode = 0x80470000
	StatusBadContentFilterInvalid                 StatusCode = 0x80480000
	StatusBadFilterOperatorInvalid                StatusCode = 0x80C10000
	StatusBadFilterOperatorUnsupported            StatusCode = 0x80C20000
	StatusBadFilterOperandCountMismatch           StatusCode = 0x80C30000
	StatusBadFilterOperandInvalid                 StatusCode = 0x80490000
	StatusBadFilterElementInvalid                 StatusCode = 0x80C40000
	StatusBadFilterLiteralInvalid                 StatusCode = 0x80C50000
	StatusBadContinuationPointInvalid             StatusCode = 0x804A0000
	StatusBadNoContinuationPoints                 StatusCode = 0x804B0000
	StatusBadReferenceTypeIdInvalid               StatusCode = 0x804C0000
	StatusBadBrowseDirectionInvalid               StatusCode = 0x804D0000
	StatusBadNodeNotInView                        StatusCode = 0x804E0000
	StatusBadNumericOverflow                      StatusCode = 0x81120000
	StatusBadServerUriInvalid                     StatusCode = 0x804F0000
	StatusBadServerNameMissing                    StatusCode = 0x80500000
	StatusBadDiscoveryUrlMissing                  StatusCode = 0x80510000
	StatusBadSempahoreFileMissing                 StatusCode = 0x80520000
	StatusBadRequestTypeInvalid                   StatusCode = 0x80530000
	StatusBadSecurityModeRejected                 StatusCode = 0x80540000
	StatusBadSecurityPolicyRejected               StatusCode = 0x80550000
	StatusBadTooManySessions                      StatusCode = 0x80560000
	StatusBadUserSignatureInvalid                 StatusCode = 0x80570000
	StatusBadApplicationSignatureInvalid          StatusCode = 0x80580000
	StatusBadNoValidCertificates                  StatusCode = 0x80590000
	StatusBadIdentityChangeNotSupported           StatusCode = 0x80C60000
	StatusBadRequestCancelledByRequest            StatusCode = 0x805A0000
	StatusBadParentNodeIdInvalid                  StatusCode = 0x805B0000
	StatusBadReferenceNotAllowed                  StatusCode = 0x805C0000
	StatusBadNodeIdRejected                       StatusCode = 0x805D0000
	StatusBadNodeIdExists                         StatusCode = 0x805E0000
	StatusBadNodeClassInvalid                     StatusCode = 0x805F0000
	StatusBadBrowseNameInvalid                    StatusCode = 0x80600000
	StatusBadBrowseNameDuplicated                 StatusCode = 0x80610000
	StatusBadNodeAttributesInvalid                StatusCode = 0x80620000
	StatusBadTypeDefinitionInvalid                StatusCode = 0x80630000
	StatusBadSourceNodeIdInvalid                  StatusCode = 0x80640000
	StatusBadTargetNodeIdInvalid                  StatusCode = 0x80650000
	StatusBadDuplicateReferenceNotAllowed         StatusCode = 0x80660000
	StatusBadInvalidSelfReference                 StatusCode = 0x80670000
	StatusBadReferenceLocalOnly                   StatusCode = 0x80680000
	StatusBadNoDeleteRights                       StatusCode = 0x80690000
	StatusUncertainReferenceNotDeleted            StatusCode = 0x40BC0000
	StatusBadServerIndexInvalid                   StatusCode = 0x806A0000
	StatusBadViewIdUnknown                        StatusCode = 0x806B0000
	StatusBadViewTimestampInvalid                 StatusCode = 0x80C90000
	StatusBadViewParameterMismatch                StatusCode = 0x80CA0000
	StatusBadViewVersionInvalid                   StatusCode = 0x80CB0000
	StatusUncertainNotAllNodesAvailable           StatusCode = 0x40C00000
	StatusGoodResultsMayBeIncomplete              StatusCode = 0x00BA0000
	StatusBadNotTypeDefinition                    StatusCode = 0x80C80000
	StatusUncertainReferenceOutOfServer           StatusCode = 0x406C0000
	StatusBadTooManyMatches                       StatusCode = 0x806D0000
	StatusBadQueryTooComplex                      StatusCode = 0x806E0000
	StatusBadNoMatch                              StatusCode = 0x806F0000
	StatusBadMaxAgeInvalid                        StatusCode = 0x80700000
	StatusBadSecurityModeInsufficient             StatusCode = 0x80E60000
	StatusBadHistoryOperationInvalid              StatusCode = 0x80710000
	StatusBadHistoryOperationUnsupported          StatusCode = 0x80720000
	StatusBadInvalidTimestampArgument             StatusCode = 0x80BD0000
	StatusBadWriteNotSupported                    StatusCode = 0x80730000
	StatusBadTypeMismatch                         StatusCode = 0x80740000
	StatusBadMethodInvalid                        StatusCode = 0x80750000
	StatusBadArgumentsMissing                     StatusCode = 0x80760000
	StatusBadNotExecutable                        StatusCode = 0x81110000
	StatusBadTooManySubscriptions                 StatusCode = 0x80770000
	StatusBadTooManyPublishRequests               StatusCode = 0x80780000
	StatusBadNoSubscription                       StatusCode = 0x80790000
	StatusBadSequenceNumberUnknown                StatusCode = 0x807A0000
	StatusBadMessageNotAvailable                  StatusCode = 0x807B0000
	StatusBadInsufficientClientProfile            StatusCode = 0x807C0000
	StatusBadStateNotActive                       StatusCode = 0x80BF0000
	StatusBadAlreadyExists                        StatusCode = 0x81150000
	StatusBadTcpServerTooBusy                     StatusCode = 0x807D0000
	StatusBadTcpMessageTypeInvalid                StatusCode = 0x807E0000
	StatusBadTcpSecureChannelUnknown              StatusCode = 0x807F0000
	StatusBadTcpMessageTooLarge                   StatusCode = 0x80800000
	StatusBadTcpNotEnoughResources                StatusCode = 0x80810000
	StatusBadTcpInternalError                     StatusCode = 0x80820000
	StatusBadTcpEndpointUrlInvalid                StatusCode = 0x80830000
	StatusBadRequestInterrupted                   StatusCode = 0x80840000
	StatusBadRequestTimeout                       StatusCode = 0x80850000
	StatusBadSecureChannelClosed                  StatusCode = 0x80860000
	StatusBadSecureChannelTokenUnknown            StatusCode = 0x80870000
	StatusBadSequenceNumberInvalid                StatusCode = 0x80880000
	StatusBadProtocolVersionUnsupported           StatusCode = 0x80BE0000
	StatusBadConfigurationError                   StatusCode = 0x80890000
	StatusBadNotConnected                         StatusCode = 0x808A0000
	StatusBadDeviceFailure                        StatusCode = 0x808B0000
	StatusBadSensorFailure                        StatusCode = 0x808C0000
	StatusBadOutOfService                         StatusCode = 0x808D0000
	StatusBadDeadbandFilterInvalid                StatusCode = 0x808E0000
	StatusUncertainNoCommunicationLastUsableValue StatusCode = 0x408F0000
	StatusUncertainLastUsableValue                StatusCode = 0x40900000
	StatusUncertainSubstituteValue                StatusCode = 0x40910000
	StatusUncertainInitialValue                   StatusCode = 0x40920000
	StatusUncertainSensorNotAccurate              StatusCode = 0x40930000
	StatusUncertainEngineeringUnitsExceeded       StatusCode = 0x40940000
	StatusUncertainSubNormal                      StatusCode = 0x40950000
	StatusGoodLocalOverride                       StatusCode = 0x00960000
	StatusBadRefreshInProgress                    StatusCode = 0x80970000
	StatusBadConditionAlreadyDisabled             StatusCode = 0x80980000
	StatusBadConditionAlreadyEnabled              StatusCode = 0x80CC0000
	StatusBadConditionDisabled                    StatusCode = 0x80990000
	StatusBadEventIdUnknown                       StatusCode = 0x809A0000
	StatusBadEventNotAcknowledgeable              StatusCode = 0x80BB0000
	StatusBadDialogNotActive                      StatusCode = 0x80CD0000
	StatusBadDialogResponseInvalid                StatusCode = 0x80CE0000
	StatusBadConditionBranchAlreadyAcked          StatusCode = 0x80CF0000
	StatusBadConditionBranchAlreadyConfirmed      StatusCode = 0x80D00000
	StatusBadConditionAlreadyShelved              StatusCode = 0x80D10000
	StatusBadConditionNotShelved                  StatusCode = 0x80D20000
	StatusBadShelvingTimeOutOfRange               StatusCode = 0x80D30000
	StatusBadNoData                               StatusCode = 0x809B0000
	StatusBadBoundNotFound                        StatusCode = 0x80D70000
	StatusBadBoundNotSupported                    StatusCode = 0x80D80000
	StatusBadDataLost                             StatusCode = 0x809D0000
	StatusBadDataUnavailable                      StatusCode = 0x809E0000
	StatusBadEntryExists                          StatusCode = 0x809F0000
	StatusBadNoEntryExists                        StatusCode = 0x80A00000
	StatusBadTimestampNotSupported                StatusCode = 0x80A10000
	StatusGoodEntryInserted                       StatusCode = 0x00A20000
	StatusGoodEntryReplaced                       StatusCode = 0x00A30000
	StatusUncertainDataSubNormal                  StatusCode = 0x40A40000
	StatusGoodNoData                              StatusCode = 0x00A50000
	StatusGoodMoreData                            StatusCode = 0x00A60000
	StatusBadAggregateListMismatch                StatusCode = 0x80D40000
	StatusBadAggregateNotSupported                StatusCode = 0x80D50000
	StatusBadAggregateInvalidInputs               StatusCode = 0x80D60000
	StatusBadAggregateConfigurationRejected       StatusCode = 0x80DA0000
	StatusGoodDataIgnored                         StatusCode = 0x00D90000
	StatusBadRequestNotAllowed                    StatusCode = 0x80E40000
	StatusBadRequestNotComplete                   StatusCode = 0x81130000
	StatusGoodEdited                              StatusCode = 0x00DC0000
	StatusGoodPostActionFailed                    StatusCode = 0x00DD0000
	StatusUncertainDominantValueChanged           StatusCode = 0x40DE0000
	StatusGoodDependentValueChanged               StatusCode = 0x00E00000
	StatusBadDominantValueChanged                 StatusCode = 0x80E10000
	StatusUncertainDependentValueChanged          StatusCode = 0x40E20000
	StatusBadDependentValueChanged                StatusCode = 0x80E30000
	StatusGoodCommunicationEvent                  StatusCode = 0x00A70000
	StatusGoodShutdownEvent                       StatusCode = 0x00A80000
	StatusGoodCallAgain                           StatusCode = 0x00A90000
	StatusGoodNonCriticalTimeout                  StatusCode = 0x00AA0000
	StatusBadInvalidArgument                      StatusCode = 0x80AB0000
	StatusBadConnectionRejected                   StatusCode = 0x80AC0000
	StatusBadDisconnect                           StatusCode = 0x80AD0000
	StatusBadConnectionClosed                     StatusCode = 0x80AE0000
	StatusBadInvalidState                         StatusCode = 0x80AF0000
	StatusBadEndOfStream                          StatusCode = 0x80B00000
	StatusBadNoDataAvailable                      StatusCode = 0x80B10000
	StatusBadWaitingForResponse                   StatusCode = 0x80B20000
	StatusBadOperationAbandoned                   StatusCode = 0x80B30000
	StatusBadExpectedStreamToBlock                StatusCode = 0x80B40000
	StatusBadWouldBlock                           StatusCode = 0x80B50000
	StatusBadSyntaxError                          StatusCode = 0x80B60000
	StatusBadMaxConnectionsReached                StatusCode = 0x80B70000
)

var statusNames = map[StatusCode]string{
	StatusGood:                                    "Good",
	StatusUncertain:                               "Uncertain",
	StatusBad:                                     "Bad",
	StatusBadUnexpectedError:                      "BadUnexpectedError",
	StatusBadInternalError:                        "BadInternalError",
	StatusBadOutOfMemory:                          "BadOutOfMemory",
	StatusBadResourceUnavailable:                  "BadResourceUnavailable",
	StatusBadCommunicationError:                   "BadCommunicationError",
	StatusBadEncodingError:                        "BadEncodingError",
	StatusBadDecodingError:                        "BadDecodingError",
	StatusBadEncodingLimitsExceeded:               "BadEncodingLimitsExceeded",
	StatusBadRequestTooLarge:                      "BadRequestTooLarge",
	StatusBadResponseTooLarge:                     "BadResponseTooLarge",
	StatusBadUnknownResponse:                      "BadUnknownResponse",
	StatusBadTimeout:                              "BadTimeout",
	StatusBadServiceUnsupported:                   "BadServiceUnsupported",
	StatusBadShutdown:                             "BadShutdown",
	StatusBadServerNotConnected:                   "BadServerNotConnected",
	StatusBadServerHalted:                         "BadServerHalted",
	StatusBadNothingToDo:                          "BadNothingToDo",
	StatusBadTooManyOperations:                    "BadTooManyOperations",
	StatusBadTooManyMonitoredItems:                "BadTooManyMonitoredItems",
	StatusBadDataTypeIdUnknown:                    "BadDataTypeIdUnknown",
	StatusBadCertificateInvalid:                   "BadCertificateInvalid",
	StatusBadSecurityChecksFailed:                 "BadSecurityChecksFailed",
	StatusBadCertificatePolicyCheckFailed:         "BadCertificatePolicyCheckFailed",
	StatusBadCertificateTimeInvalid:               "BadCertificateTimeInvalid",
	StatusBadCertificateIssuerTimeInvalid:         "BadCertificateIssuerTimeInvalid",
	StatusBadCertificateHostNameInvalid:           "BadCertificateHostNameInvalid",
	StatusBadCertificateUriInvalid:                "BadCertificateUriInvalid",
	StatusBadCertificateUseNotAllowed:             "BadCertificateUseNotAllowed",
	StatusBadCertificateIssuerUseNotAllowed:       "BadCertificateIssuerUseNotAllowed",
	StatusBadCertificateUntrusted:                 "BadCertificateUntrusted",
	StatusBadCertificateRevocationUnknown:         "BadCertificateRevocationUnknown",
	StatusBadCertificateIssuerRevocationUnknown:   "BadCertificateIssuerRevocationUnknown",
	StatusBadCertificateRevoked:                   "BadCertificateRevoked",
	StatusBadCertificateIssuerRevoked:             "BadCertificateIssuerRevoked",
	StatusBadCertificateChainIncomplete:           "BadCertificateChainIncomplete",
	StatusBadUserAccessDenied:                     "BadUserAccessDenied",
	StatusBadIdentityTokenInvalid:                 "BadIdentityTokenInvalid",
	StatusBadIdentityTokenRejected:                "BadIdentityTokenRejected",
	StatusBadSecureChannelIdInvalid:               "BadSecureChannelIdInvalid",
	StatusBadInvalidTimestamp:                     "BadInvalidTimestamp",
	StatusBadNonceInvalid:                         "BadNonceInvalid",
	StatusBadSessionIdInvalid:                     "BadSessionIdInvalid",
	StatusBadSessionClosed:                        "BadSessionClosed",
	StatusBadSessionNotActivated:                  "BadSessionNotActivated",
	StatusBadSubscriptionIdInvalid:                "BadSubscriptionIdInvalid",
	StatusBadRequestHeaderInvalid:                 "BadRequestHeaderInvalid",
	StatusBadTimestampsToReturnInvalid:            "BadTimestampsToReturnInvalid",
	StatusBadRequestCancelledByClient:             "BadRequestCancelledByClient",
	StatusBadTooManyArguments:                     "BadTooManyArguments",
	StatusBadLicenseExpired:                       "BadLicenseExpired",
	StatusBadLicenseLimitsExceeded:                "BadLicenseLimitsExceeded",
	StatusBadLicenseNotAvailable:                  "BadLicenseNotAvailable",
	StatusGoodSubscriptionTransferred:             "GoodSubscriptionTransferred",
	StatusGoodCompletesAsynchronously:             "GoodCompletesAsynchronously",
	StatusGoodOverload:                            "GoodOverload",
	StatusGoodClamped:                             "GoodClamped",
	StatusBadNoCommunication:                      "BadNoCommunication",
	StatusBadWaitingForInitialData:                "BadWaitingForInitialData",
	StatusBadNodeIdInvalid:                        "BadNodeIdInvalid",
	StatusBadNodeIdUnknown:                        "BadNodeIdUnknown",
	StatusBadAttributeIdInvalid:                   "BadAttributeIdInvalid",
	StatusBadIndexRangeInvalid:                    "BadIndexRangeInvalid",
	StatusBadIndexRangeNoData:                     "BadIndexRangeNoData",
	StatusBadDataEncodingInvalid:                  "BadDataEncodingInvalid",
	StatusBadDataEncodingUnsupported:              "BadDataEncodingUnsupported",
	StatusBadNotReadable:                          "BadNotReadable",
	StatusBadNotWritable:                          "BadNotWritable",
	StatusBadOutOfRange:                           "BadOutOfRange",
	StatusBadNotSupported:                         "BadNotSupported",
	StatusBadNotFound:                             "BadNotFound",
	StatusBadObjectDeleted:                        "BadObjectDeleted",
	StatusBadNotImplemented:                       "BadNotImplemented",
	StatusBadMonitoringModeInvalid:                "BadMonitoringModeInvalid",
	StatusBadMonitoredItemIdInvalid:               "BadMonitoredItemIdInvalid",
	StatusBadMonitoredItemFilterInvalid:           "BadMonitoredItemFilterInvalid",
	StatusBadMonitoredItemFilterUnsupported:       "BadMonitoredItemFilterUnsupported",
	StatusBadFilterNotAllowed:                     "BadFilterNotAllowed",
	StatusBadStructureMissing:                     "BadStructureMissing",
	StatusBadEventFilterInvalid:                   "BadEventFilterInvalid",
	StatusBadContentFilterInvalid:                 "BadContentFilterInvalid",
	StatusBadFilterOperatorInvalid:                "BadFilterOperatorInvalid",
	StatusBadFilterOperatorUnsupported:            "BadFilterOperatorUnsupported",
	StatusBadFilterOperandCountMismatch:           "BadFilterOperandCountMismatch",
	StatusBadFilterOperandInvalid:                 "BadFilterOperandInvalid",
	StatusBadFilterElementInvalid:                 "BadFilterElementInvalid",
	StatusBadFilterLiteralInvalid:                 "BadFilterLiteralInvalid",
	StatusBadContinuationPointInvalid:             "BadContinuationPointInvalid",
	StatusBadNoContinuationPoints:                 "BadNoContinuationPoints",
	StatusBadReferenceTypeIdInvalid:               "BadReferenceTypeIdInvalid",
	StatusBadBrowseDirectionInvalid:               "BadBrowseDirectionInvalid",
	StatusBadNodeNotInView:                        "BadNodeNotInView",
	StatusBadNumericOverflow:                      "BadNumericOverflow",
	StatusBadServerUriInvalid:                     "BadServerUriInvalid",
	StatusBadServerNameMissing:                    "BadServerNameMissing",
	StatusBadDiscoveryUrlMissing:                  "BadDiscoveryUrlMissing",
	StatusBadSempahoreFileMissing:                 "BadSempahoreFileMissing",
	StatusBadRequestTypeInvalid:                   "BadRequestTypeInvalid",
	StatusBadSecurityModeRejected:                 "BadSecurityModeRejected",
	StatusBadSecurityPolicyRejected:               "BadSecurityPolicyRejected",
	StatusBadTooManySessions:                      "BadTooManySessions",
	StatusBadUserSignatureInvalid:                 "BadUserSignatureInvalid",
	StatusBadApplicationSignatureInvalid:          "BadApplicationSignatureInvalid",
	StatusBadNoValidCertificates:                  "BadNoValidCertificates",
	StatusBadIdentityChangeNotSupported:           "BadIdentityChangeNotSupported",
	StatusBadRequestCancelledByRequest:            "BadRequestCancelledByRequest",
	StatusBadParentNodeIdInvalid:                  "BadParentNodeIdInvalid",
	StatusBadReferenceNotAllowed:                  "BadReferenceNotAllowed",
	StatusBadNodeIdRejected:                       "BadNodeIdRejected",
	StatusBadNodeIdExists:                         "BadNodeIdExists",
	StatusBadNodeClassInvalid:                     "BadNodeClassInvalid",
	StatusBadBrowseNameInvalid:                    "BadBrowseNameInvalid",
	StatusBadBrowseNameDuplicated:                 "BadBrowseNameDuplicated",
	StatusBadNodeAttributesInvalid:                "BadNodeAttributesInvalid",
	StatusBadTypeDefinitionInvalid:                "BadTypeDefinitionInvalid",
	StatusBadSourceNodeIdInvalid:                  "BadSourceNodeIdInvalid",
	StatusBadTargetNodeIdInvalid:                  "BadTargetNodeIdInvalid",
	StatusBadDuplicateReferenceNotAllowed:         "BadDuplicateReferenceNotAllowed",
	StatusBadInvalidSelfReference:                 "BadInvalidSelfReference",
	StatusBadReferenceLocalOnly:                   "BadReferenceLocalOnly",
	StatusBadNoDeleteRights:                       "BadNoDeleteRights",
	StatusUncertainReferenceNotDeleted:            "UncertainReferenceNotDeleted",
	StatusBadServerIndexInvalid:                   "BadServerIndexInvalid",
	StatusBadViewIdUnknown:                        "BadViewIdUnknown",
	StatusBadViewTimestampInvalid:                 "BadViewTimestampInvalid",
	StatusBadViewParameterMismatch:                "BadViewParameterMismatch",
	StatusBadViewVersionInvalid:                   "BadViewVersionInvalid",
	StatusUncertainNotAllNodesAvailable:           "UncertainNotAllNodesAvailable",
	StatusGoodResultsMayBeIncomplete:              "GoodResultsMayBeIncomplete",
	StatusBadNotTypeDefinition:                    "BadNotTypeDefinition",
	StatusUncertainReferenceOutOfServer:           "UncertainReferenceOutOfServer",
	StatusBadTooManyMatches:                       "BadTooManyMatches",
	StatusBadQueryTooComplex:                      "BadQueryTooComplex",
	StatusBadNoMatch:                              "BadNoMatch",
	StatusBadMaxAgeInvalid:                        "BadMaxAgeInvalid",
	StatusBadSecurityModeInsufficient:             "BadSecurityModeInsufficient",
	StatusBadHistoryOperationInvalid:              "BadHistoryOperationInvalid",
	StatusBadHistoryOperationUnsupported:          "BadHistoryOperationUnsupported",
	StatusBadInvalidTimestampArgument:             "BadInvalidTimestampArgument",
	StatusBadWriteNotSupported:                    "BadWriteNotSupported",
	StatusBadTypeMismatch:                         "BadTypeMismatch",
	StatusBadMethodInvalid:                        "BadMethodInvalid",
	StatusBadArgumentsMissing:                     "BadArgumentsMissing",
	StatusBadNotExecutable:                        "BadNotExecutable",
	StatusBadTooManySubscriptions:                 "BadTooManySubscriptions",
	StatusBadTooManyPublishRequests:               "BadTooManyPublishRequests",
	StatusBadNoSubscription:                       "BadNoSubscription",
	StatusBadSequenceNumberUnknown:                "BadSequenceNumberUnknown",
	StatusBadMessageNotAvailable:                  "BadMessageNotAvailable",
	StatusBadInsufficientClientProfile:            "BadInsufficientClientProfile",
	StatusBadStateNotActive:                       "BadStateNotActive",
	StatusBadAlreadyExists:                        "BadAlreadyExists",
	StatusBadTcpServerTooBusy:                     "BadTcpServerTooBusy",
	StatusBadTcpMessageTypeInvalid:                "BadTcpMessageTypeInvalid",
	StatusBadTcpSecureChannelUnknown:              "BadTcpSecureChannelUnknown",
	StatusBadTcpMessageTooLarge:                   "BadTcpMessageTooLarge",
	StatusBadTcpNotEnoughResources:                "BadTcpNotEnoughResources",
	StatusBadTcpInternalError:                     "BadTcpInternalError",
	StatusBadTcpEndpointUrlInvalid:                "BadTcpEndpointUrlInvalid",
	StatusBadRequestInterrupted:                   "BadRequestInterrupted",
	StatusBadRequestTimeout:                       "BadRequestTimeout",
	StatusBadSecureChannelClosed:                  "BadSecureChannelClosed",
	StatusBadSecureChannelTokenUnknown:            "BadSecureChannelTokenUnknown",
	StatusBadSequenceNumberInvalid:                "BadSequenceNumberInvalid",
	StatusBadProtocolVersionUnsupported:           "BadProtocolVersionUnsupported",
	StatusBadConfigurationError:                   "BadConfigurationError",
	StatusBadNotConnected:                         "BadNotConnected",
	StatusBadDeviceFailure:                        "BadDeviceFailure",
	StatusBadSensorFailure:                        "BadSensorFailure",
	StatusBadOutOfService:                         "BadOutOfService",
	StatusBadDeadbandFilterInvalid:                "BadDeadbandFilterInvalid",
	StatusUncertainNoCommunicationLastUsableValue: "UncertainNoCommunicationLastUsableValue",
	StatusUncertainLastUsableValue:                "UncertainLastUsableValue",
	StatusUncertainSubstituteValue:                "UncertainSubstituteValue",
	StatusUncertainInitialValue:                   "UncertainInitialValue",
	StatusUncertainSensorNotAccurate:              "UncertainSensorNotAccurate",
	StatusUncertainEngineeringUnitsExceeded:       "UncertainEngineeringUnitsExceeded",
	StatusUncertainSubNormal:                      "UncertainSubNormal",
	StatusGoodLocalOverride:                       "GoodLocalOverride",
	StatusBadRefreshInProgress:                    "BadRefreshInProgress",
	StatusBadConditionAlreadyDisabled:             "BadConditionAlreadyDisabled",
	StatusBadConditionAlreadyEnabled:              "BadConditionAlreadyEnabled",
	StatusBadConditionDisabled:                    "BadConditionDisabled",
	StatusBadEventIdUnknown:                       "BadEventIdUnknown",
	StatusBadEventNotAcknowledgeable:              "BadEventNotAcknowledgeable",
	StatusBadDialogNotActive:                      "BadDialogNotActive",
	StatusBadDialogResponseInvalid:                "BadDialogResponseInvalid",
	StatusBadConditionBranchAlreadyAcked:          "BadConditionBranchAlreadyAcked",
	StatusBadConditionBranchAlreadyConfirmed:      "BadConditionBranchAlreadyConfirmed",
	StatusBadConditionAlreadyShelved:              "BadConditionAlreadyShelved",
	StatusBadConditionNotShelved:                  "BadConditionNotShelved",
	StatusBadShelvingTimeOutOfRange:               "BadShelvingTimeOutOfRange",
	StatusBadNoData:                               "BadNoData",
	StatusBadBoundNotFound:                        "BadBoundNotFound",
	StatusBadBoundNotSupported:                    "BadBoundNotSupported",
	StatusBadDataLost:                             "BadDataLost",
	StatusBadDataUnavailable:                      "BadDataUnavailable",
	StatusBadEntryExists:                          "BadEntryExists",
	StatusBadNoEntryExists:                        "BadNoEntryExists",
	StatusBadTimestampNotSupported:                "BadTimestampNotSupported",
	StatusGoodEntryInserted:                       "GoodEntryInserted",
	StatusGoodEntryReplaced:                       "GoodEntryReplaced",
	StatusUncertainDataSubNormal:                  "UncertainDataSubNormal",
	StatusGoodNoData:                              "GoodNoData",
	StatusGoodMoreData:                            "GoodMoreData",
	StatusBadAggregateListMismatch:                "BadAggregateListMismatch",
	StatusBadAggregateNotSupported:                "BadAggregateNotSupported",
	StatusBadAggregateInvalidInputs:               "BadAggregateInvalidInputs",
	StatusBadAggregateConfigurationRejected:       "BadAggregateConfigurationRejected",
	StatusGoodDataIgnored:                         "GoodDataIgnored",
	StatusBadRequestNotAllowed:                    "BadRequestNotAllowed",
	StatusBadRequestNotComplete:                   "BadRequestNotComplete",
	StatusGoodEdited:                              "GoodEdited",
	StatusGoodPostActionFailed:                    "GoodPostActionFailed",
	StatusUncertainDominantValueChanged:           "UncertainDominantValueChanged",
	StatusGoodDependentValueChanged:               "GoodDependentValueChanged",
	StatusBadDominantValueChanged:                 "BadDominantValueChanged",
	StatusUncertainDependentValueChanged:          "UncertainDependentValueChanged",
	StatusBadDependentValueChanged:                "BadDependentValueChanged",
	StatusGoodCommunicationEvent:                  "GoodCommunicationEvent",
	StatusGoodShutdownEvent:                       "GoodShutdownEvent",
	StatusGoodCallAgain:                           "GoodCallAgain",
	StatusGoodNonCriticalTimeout:                  "GoodNonCriticalTimeout",
	StatusBadInvalidArgument:                      "BadInvalidArgument",
	StatusBadConnectionRejected:                   "BadConnectionRejected",
	StatusBadDisconnect:                           "BadDisconnect",
	StatusBadConnectionClosed:                     "BadConnectionClosed",
	StatusBadInvalidState:                         "BadInvalidState",
	StatusBadEndOfStream:                          "BadEndOfStream",
	StatusBadNoDataAvailable:                      "BadNoDataAvailable",
	StatusBadWaitingForResponse:                   "BadWaitingForResponse",
	StatusBadOperationAbandoned:                   "BadOperationAbandoned",
	StatusBadExpectedStreamToBlock:                "BadExpectedStreamToBlock",
	StatusBadWouldBlock:                           "BadWouldBlock",
	StatusBadSyntaxError:                          "BadSyntaxError",
	StatusBadMaxConnectionsReached:                "BadMaxConnectionsReached",
}

var statusByName map[string]StatusCode

func init() {
	statusByName = make(map[string]StatusCode, len(statusNames))
	for c, n := range statusNames {
		statusByName[n] = c
	}
}

// Name returns the mnemonic of the status code.
func (s StatusCode) Name() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("StatusCode(0x%08X)", uint32(s))
}

// Known reports whether the status code is in the status table.
func (s StatusCode) Known() bool {
	_, ok := statusNames[s]
	return ok
}

func (s StatusCode) String() string {
	return s.Name()
}

// Error implements error.
func (s StatusCode) Error() string {
	return s.Name()
}

// IsGood reports a good severity.
func (s StatusCode) IsGood() bool {
	return s&severityMask == 0
}

// IsUncertain reports an uncertain severity.
func (s StatusCode) IsUncertain() bool {
	return s&severityMask == severityUncertain
}

// IsBad reports a bad severity.
func (s StatusCode) IsBad() bool {
	return s&severityBad != 0
}

// ParseStatusCode looks up a status code by its mnemonic.
func ParseStatusCode(name string) (StatusCode, error) {
	if c, ok := statusByName[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownStatus, name)
}
