package testspec

const thingsGetExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "resourceGroupName": "rg1",
    "thingName": "thing1",
    "api-version": "2021-01-01"
  },
  "responses": {
    "200": {
      "body": {
        "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1",
        "name": "thing1",
        "type": "Microsoft.Mock/things",
        "location": "eastus",
        "tags": {"env": "test"},
        "properties": {
          "provisioningState": "Creating",
          "size": 3,
          "enabled": true,
          "createdAt": "2021-03-01T10:00:00Z",
          "endpoints": ["https://thing1.example.com"]
        }
      }
    }
  }
}
`

const thingsPutExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "resourceGroupName": "rg1",
    "thingName": "thing1",
    "api-version": "2021-01-01",
    "parameters": {
      "location": "eastus",
      "tags": {"env": "test"},
      "properties": {
        "size": 3,
        "enabled": true,
        "createdAt": "2021-03-01T10:00:00Z",
        "endpoints": null
      }
    }
  },
  "responses": {
    "200": {
      "body": {
        "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1",
        "name": "thing1",
        "type": "Microsoft.Mock/things",
        "location": "eastus",
        "properties": {"provisioningState": "Succeeded", "size": 3}
      }
    },
    "201": {
      "headers": {"Azure-AsyncOperation": "https://management.azure.com/subscriptions/sub1/providers/Microsoft.Mock/locations/eastus/operationStatuses/op1?api-version=2021-01-01"},
      "body": {
        "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1",
        "name": "thing1",
        "type": "Microsoft.Mock/things",
        "location": "eastus",
        "properties": {"provisioningState": "Creating", "size": 3}
      }
    }
  }
}
`

const thingsPutMinExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "resourceGroupName": "rg1",
    "thingName": "thing2",
    "api-version": "2021-01-01",
    "parameters": {"location": "westus"}
  },
  "responses": {
    "200": {
      "body": {
        "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing2",
        "name": "thing2",
        "type": "Microsoft.Mock/things",
        "location": "westus",
        "properties": {"provisioningState": "Succeeded"}
      }
    }
  }
}
`

const thingsDeleteExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "resourceGroupName": "rg1",
    "thingName": "thing1",
    "api-version": "2021-01-01"
  },
  "responses": {
    "200": {},
    "202": {"headers": {"Location": "https://management.azure.com/subscriptions/sub1/providers/Microsoft.Mock/locations/eastus/operationResults/op1?api-version=2021-01-01"}},
    "204": {}
  }
}
`

const thingsListExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "api-version": "2021-01-01"
  },
  "responses": {
    "200": {
      "body": {
        "value": [
          {
            "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1",
            "name": "thing1",
            "type": "Microsoft.Mock/things",
            "location": "eastus",
            "properties": {"provisioningState": "Succeeded", "size": 3}
          }
        ],
        "nextLink": "https://management.azure.com/subscriptions/sub1/providers/Microsoft.Mock/things?api-version=2021-01-01&$skiptoken=abc"
      }
    }
  }
}
`

const thingsStartExample = `{
  "parameters": {
    "subscriptionId": "sub1",
    "resourceGroupName": "rg1",
    "thingName": "thing1",
    "api-version": "2021-01-01"
  },
  "responses": {
    "200": {
      "body": {
        "id": "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Mock/things/thing1",
        "name": "thing1",
        "type": "Microsoft.Mock/things",
        "location": "eastus",
        "properties": {"provisioningState": "Succeeded"}
      }
    },
    "202": {}
  }
}
`
