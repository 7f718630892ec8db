// Package arm holds the Azure Resource Manager conventions shared by the mock
// control plane: the CloudError envelope, well-known header names and the URL
// shape predicates used to reason about resource hierarchies.
//
// ARM URLs alternate resource-type and resource-name segments. A
// providers/{namespace} pair restarts that alternation, so
//
//	/subscriptions/{s}/resourceGroups/{g}/providers/Microsoft.Web/sites/{site}
//
// has management levels at resourceGroups/{g} and sites/{site}. The
// subscription id is never a management level: every subscription is
// treated as implicitly present.
package arm
