package testspec

const commonTypes = `{
  "swagger": "2.0",
  "info": {"title": "Common types", "version": "2.0"},
  "paths": {},
  "definitions": {
    "Resource": {
      "type": "object",
      "properties": {
        "id": {"type": "string", "readOnly": true},
        "name": {"type": "string", "readOnly": true},
        "type": {"type": "string", "readOnly": true}
      },
      "x-ms-azure-resource": true
    },
    "TrackedResource": {
      "type": "object",
      "allOf": [{"$ref": "#/definitions/Resource"}],
      "properties": {
        "location": {"type": "string", "x-ms-mutability": ["read", "create"]},
        "tags": {"type": "object", "additionalProperties": {"type": "string"}}
      },
      "required": ["location"]
    },
    "ErrorResponse": {
      "type": "object",
      "properties": {
        "error": {
          "type": "object",
          "properties": {
            "code": {"type": "string"},
            "message": {"type": "string"}
          }
        }
      }
    }
  },
  "parameters": {
    "SubscriptionIdParameter": {
      "name": "subscriptionId",
      "in": "path",
      "required": true,
      "type": "string",
      "format": "uuid"
    },
    "ResourceGroupNameParameter": {
      "name": "resourceGroupName",
      "in": "path",
      "required": true,
      "type": "string",
      "x-ms-parameter-location": "method"
    },
    "ApiVersionParameter": {
      "name": "api-version",
      "in": "query",
      "required": true,
      "type": "string"
    }
  }
}
`

const mockSpec = `{
  "swagger": "2.0",
  "info": {"title": "MockClient", "version": "2021-01-01"},
  "host": "management.azure.com",
  "schemes": ["https"],
  "consumes": ["application/json"],
  "produces": ["application/json"],
  "paths": {
    "/providers/Microsoft.Mock/operations": {
      "get": {
        "operationId": "Operations_List",
        "parameters": [{"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/OperationList"}}
        }
      }
    },
    "/subscriptions/{subscriptionId}/providers/Microsoft.Mock/things": {
      "get": {
        "operationId": "Things_ListBySubscription",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"},
          {"name": "$top", "in": "query", "required": false, "type": "integer", "format": "int32"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ThingList"}},
          "default": {"description": "Error", "schema": {"$ref": "../../../../../common-types/resource-management/v2/types.json#/definitions/ErrorResponse"}}
        },
        "x-ms-pageable": {"nextLinkName": "nextLink"},
        "x-ms-examples": {
          "List things": {"$ref": "./examples/Things_ListBySubscription.json"}
        }
      }
    },
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things": {
      "get": {
        "operationId": "Things_ListByResourceGroup",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/ThingList"}}
        },
        "x-ms-pageable": {"nextLinkName": "nextLink"}
      }
    },
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things/{thingName}": {
      "parameters": [
        {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
        {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
        {"$ref": "#/parameters/ThingNameParameter"}
      ],
      "get": {
        "operationId": "Things_Get",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Thing"}},
          "default": {"description": "Error", "schema": {"$ref": "../../../../../common-types/resource-management/v2/types.json#/definitions/ErrorResponse"}}
        },
        "x-ms-examples": {
          "Get a thing": {"$ref": "./examples/Things_Get.json"}
        }
      },
      "put": {
        "operationId": "Things_CreateOrUpdate",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"},
          {"name": "parameters", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Thing"}}
        ],
        "responses": {
          "200": {"description": "Updated", "schema": {"$ref": "#/definitions/Thing"}},
          "201": {"description": "Created", "schema": {"$ref": "#/definitions/Thing"}}
        },
        "x-ms-long-running-operation": true,
        "x-ms-long-running-operation-options": {"final-state-via": "azure-async-operation"},
        "x-ms-examples": {
          "Create a thing": {"$ref": "./examples/Things_CreateOrUpdate.json"},
          "Create a minimal thing": {"$ref": "./examples/Things_CreateOrUpdate_Min.json"}
        }
      },
      "patch": {
        "operationId": "Things_Update",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"},
          {"name": "parameters", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ThingUpdate"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Thing"}}
        }
      },
      "delete": {
        "operationId": "Things_Delete",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "Deleted"},
          "202": {"description": "Accepted"},
          "204": {"description": "No content"}
        },
        "x-ms-long-running-operation": true,
        "x-ms-examples": {
          "Delete a thing": {"$ref": "./examples/Things_Delete.json"}
        }
      }
    },
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things/{thingName}/start": {
      "post": {
        "operationId": "Things_Start",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"$ref": "#/parameters/ThingNameParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Thing"}},
          "202": {"description": "Accepted"}
        },
        "x-ms-long-running-operation": true,
        "x-ms-examples": {
          "Start a thing": {"$ref": "./examples/Things_Start.json"}
        }
      }
    },
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things/{thingName}/widgets/{widgetName}": {
      "get": {
        "operationId": "Widgets_Get",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"$ref": "#/parameters/ThingNameParameter"},
          {"name": "widgetName", "in": "path", "required": true, "type": "string"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Widget"}}
        }
      },
      "put": {
        "operationId": "Widgets_CreateOrUpdate",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"$ref": "#/parameters/ThingNameParameter"},
          {"name": "widgetName", "in": "path", "required": true, "type": "string"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"},
          {"name": "parameters", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Widget"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Widget"}}
        }
      }
    }
  },
  "x-ms-paths": {
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things/{thingName}?action=restart": {
      "post": {
        "operationId": "Things_Restart",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"$ref": "#/parameters/ThingNameParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "204": {"description": "Restarted"}
        }
      }
    }
  },
  "parameters": {
    "ThingNameParameter": {
      "name": "thingName",
      "in": "path",
      "required": true,
      "type": "string",
      "pattern": "^[a-zA-Z0-9-]{3,24}$",
      "x-ms-parameter-location": "method"
    }
  },
  "definitions": {
    "Thing": {
      "type": "object",
      "allOf": [{"$ref": "../../../../../common-types/resource-management/v2/types.json#/definitions/TrackedResource"}],
      "properties": {
        "properties": {"$ref": "#/definitions/ThingProperties", "x-ms-client-flatten": true}
      }
    },
    "ThingUpdate": {
      "type": "object",
      "properties": {
        "tags": {"type": "object", "additionalProperties": {"type": "string"}},
        "properties": {"$ref": "#/definitions/ThingProperties"}
      }
    },
    "ThingProperties": {
      "type": "object",
      "properties": {
        "provisioningState": {
          "type": "string",
          "readOnly": true,
          "enum": ["Succeeded", "Failed", "Canceled", "Creating"],
          "x-ms-enum": {"name": "ProvisioningState", "modelAsString": true}
        },
        "size": {"type": "integer", "format": "int32", "minimum": 1},
        "enabled": {"type": "boolean"},
        "createdAt": {"type": "string", "format": "date-time", "readOnly": true},
        "endpoints": {"type": "array", "items": {"type": "string", "format": "uri"}},
        "parent": {"$ref": "#/definitions/ThingProperties"}
      }
    },
    "ThingList": {
      "type": "object",
      "properties": {
        "value": {"type": "array", "items": {"$ref": "#/definitions/Thing"}},
        "nextLink": {"type": "string", "readOnly": true}
      }
    },
    "Widget": {
      "type": "object",
      "allOf": [{"$ref": "../../../../../common-types/resource-management/v2/types.json#/definitions/Resource"}],
      "properties": {
        "properties": {
          "type": "object",
          "properties": {
            "color": {"type": "string", "enum": ["red", "blue"]},
            "provisioningState": {"type": "string", "readOnly": true}
          }
        }
      }
    },
    "OperationList": {
      "type": "object",
      "properties": {
        "value": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "display": {"type": "object", "properties": {"operation": {"type": "string"}}}
            }
          }
        },
        "nextLink": {"type": "string"}
      }
    }
  }
}
`

const mockSpecNew = `{
  "swagger": "2.0",
  "info": {"title": "MockClient", "version": "2022-01-01"},
  "paths": {
    "/subscriptions/{subscriptionId}/resourceGroups/{resourceGroupName}/providers/Microsoft.Mock/things/{thingName}": {
      "get": {
        "operationId": "Things_Get",
        "parameters": [
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/SubscriptionIdParameter"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ResourceGroupNameParameter"},
          {"name": "thingName", "in": "path", "required": true, "type": "string"},
          {"$ref": "../../../../../common-types/resource-management/v2/types.json#/parameters/ApiVersionParameter"}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/Thing"}}
        }
      }
    }
  },
  "definitions": {
    "Thing": {
      "type": "object",
      "allOf": [{"$ref": "../../../../../common-types/resource-management/v2/types.json#/definitions/TrackedResource"}],
      "properties": {
        "properties": {
          "type": "object",
          "properties": {
            "provisioningState": {"type": "string", "readOnly": true},
            "sku": {"type": "string"}
          }
        }
      }
    }
  }
}
`
