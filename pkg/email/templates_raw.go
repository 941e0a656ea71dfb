package email

const (
	requestReceivedHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>New rental request</title>
	</head>
	<body>
		<div>
			<h1>New rental request</h1>
			<p><strong>{{.Name}}</strong> asked about a rental on {{.AppName}}.</p>
			<p>Email: <a href="mailto:{{.Email}}">{{.Email}}</a></p>
			<p>Phone: {{.Phone}}</p>
			{{if .Vehicle}}<p>Vehicle: {{.Vehicle}}</p>{{end}}
			<p>Dates: {{.StartDate}} to {{.EndDate}}</p>
			{{if .Message}}<p>Message:</p><p>{{.Message}}</p>{{end}}
			<p><a href="{{.AppURL}}/admin">Open the admin dashboard</a></p>
		</div>
	</body>
	</html>`

	requestReceivedText = `
		{{.AppName}} - New rental request

		From: {{.Name}}
		Email: {{.Email}}
		Phone: {{.Phone}}
		{{if .Vehicle}}Vehicle: {{.Vehicle}}{{end}}
		Dates: {{.StartDate}} to {{.EndDate}}
		{{if .Message}}Message: {{.Message}}{{end}}

		{{.AppURL}}/admin
	`

	customerInfoLinkHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Complete your rental</title>
	</head>
	<body>
		<div>
			<h1>Almost there!</h1>
			<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
			<p>Your rental of the {{.Vehicle}} from {{.StartDate}} to {{.EndDate}} ({{.CostPerDay}}) is being prepared.</p>
			<p>Please add your driver's license and insurance details so we can prepare the contract:</p>
			<p>
				<a href="{{.LinkURL}}">Enter driver and insurance details</a>
			</p>
			<p>Or copy and paste this link in your browser:</p>
			<p>{{.LinkURL}}</p>
			<p>This link expires on {{.ExpiresAt}}.</p>
			<p>{{.AppName}}</p>
		</div>
	</body>
	</html>`

	customerInfoLinkText = `
		{{.AppName}} - Complete your rental

		Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

		Your rental of the {{.Vehicle}} from {{.StartDate}} to {{.EndDate}} ({{.CostPerDay}}) is being prepared.

		Please add your driver's license and insurance details here:
		{{.LinkURL}}

		This link expires on {{.ExpiresAt}}.
	`

	contractReadyHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Your rental contract</title>
	</head>
	<body>
		<div>
			<h1>Your contract is ready</h1>
			<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
			<p>Thanks for sending your details. The rental contract for the {{.Vehicle}} is attached.</p>
			<p>Please sign it and upload the signed copy (PDF or photo):</p>
			<p>
				<a href="{{.LinkURL}}">Upload signed contract</a>
			</p>
			<p>{{.LinkURL}}</p>
			<p>This link expires on {{.ExpiresAt}}. We will email pickup instructions closer to {{.StartDate}}.</p>
			<p>{{.AppName}}</p>
		</div>
	</body>
	</html>`

	contractReadyText = `
		{{.AppName}} - Your contract is ready

		Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

		The rental contract for the {{.Vehicle}} is attached.
		Please sign it and upload the signed copy here:
		{{.LinkURL}}

		This link expires on {{.ExpiresAt}}. We will email pickup instructions closer to {{.StartDate}}.
	`

	adminLinksHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Customer info received</title>
	</head>
	<body>
		<div>
			<h1>Customer info received</h1>
			<p>{{.CustomerName}} submitted driver and insurance details for the {{.Vehicle}} (VIN {{.VIN}}).</p>
			<p>Dates: {{.StartDate}} to {{.EndDate}}, {{.CostPerDay}}</p>
			<p>When you are ready, send the renter their directions:</p>
			<p><a href="{{.PickupURL}}">Send pickup instructions</a></p>
			<p><a href="{{.DropoffURL}}">Send dropoff instructions</a></p>
			<p>These links expire on {{.ExpiresAt}}.</p>
			<p><a href="{{.AppURL}}/admin/rentals/{{.FolderID}}">Open rental folder</a></p>
		</div>
	</body>
	</html>`

	adminLinksText = `
		{{.AppName}} - Customer info received

		{{.CustomerName}} submitted driver and insurance details for the {{.Vehicle}} (VIN {{.VIN}}).
		Dates: {{.StartDate}} to {{.EndDate}}, {{.CostPerDay}}

		Send pickup instructions:
		{{.PickupURL}}

		Send dropoff instructions:
		{{.DropoffURL}}

		These links expire on {{.ExpiresAt}}.
	`

	pickupInstructionsHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Pickup instructions</title>
	</head>
	<body>
		<div>
			<h1>Pickup instructions</h1>
			<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
			<p>Here is how to pick up the {{.Vehicle}}:</p>
			<p>Where: {{.Address}}</p>
			<p>When: {{.Time}}</p>
			{{if .Instructions}}<p>{{.Instructions}}</p>{{end}}
			{{if .ContactPhone}}<p>Questions? Call {{.ContactPhone}}.</p>{{end}}
			<p>When you get the car, record the mileage and fuel level with a photo of the dashboard:</p>
			<p><a href="{{.LinkURL}}">Record pickup mileage</a></p>
			<p>{{.LinkURL}}</p>
			<p>{{.AppName}}</p>
		</div>
	</body>
	</html>`

	pickupInstructionsText = `
		{{.AppName}} - Pickup instructions

		Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

		Where: {{.Address}}
		When: {{.Time}}
		{{if .Instructions}}{{.Instructions}}{{end}}
		{{if .ContactPhone}}Questions? Call {{.ContactPhone}}.{{end}}

		When you get the car, record the mileage and fuel level here:
		{{.LinkURL}}
	`

	dropoffInstructionsHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>Return instructions</title>
	</head>
	<body>
		<div>
			<h1>Return instructions</h1>
			<p>Hi{{if .RecipientName}} {{.RecipientName}}{{end}},</p>
			<p>Here is how to return the {{.Vehicle}} on {{.EndDate}}:</p>
			<p>Where: {{.Address}}</p>
			<p>When: {{.Time}}</p>
			{{if .Instructions}}<p>{{.Instructions}}</p>{{end}}
			{{if .ContactPhone}}<p>Questions? Call {{.ContactPhone}}.</p>{{end}}
			<p>When you drop the car off, record the final mileage and fuel level and tell us how it went:</p>
			<p><a href="{{.LinkURL}}">Record return mileage</a></p>
			<p>{{.LinkURL}}</p>
			<p>{{.AppName}}</p>
		</div>
	</body>
	</html>`

	dropoffInstructionsText = `
		{{.AppName}} - Return instructions

		Hi{{if .RecipientName}} {{.RecipientName}}{{end}},

		Return the {{.Vehicle}} on {{.EndDate}}.
		Where: {{.Address}}
		When: {{.Time}}
		{{if .Instructions}}{{.Instructions}}{{end}}
		{{if .ContactPhone}}Questions? Call {{.ContactPhone}}.{{end}}

		When you drop the car off, record the final mileage here:
		{{.LinkURL}}
	`

	adminNotificationHTML string = `
	<!DOCTYPE html>
	<html>
	<head>
		<meta charset="utf-8">
		<title>{{.Title}}</title>
	</head>
	<body>
		<div>
			<h1>{{.Title}}</h1>
			<p>{{.Vehicle}}{{if .VIN}} (VIN {{.VIN}}){{end}}, {{.StartDate}} to {{.EndDate}}</p>
			{{range $k, $v := .Details}}<p>{{$k}}: {{$v}}</p>
			{{end}}
			<p><a href="{{.AppURL}}/admin/rentals/{{.FolderID}}">Open rental folder</a></p>
		</div>
	</body>
	</html>`

	adminNotificationText = `
		{{.AppName}} - {{.Title}}

		{{.Vehicle}}{{if .VIN}} (VIN {{.VIN}}){{end}}, {{.StartDate}} to {{.EndDate}}
		{{range $k, $v := .Details}}{{$k}}: {{$v}}
		{{end}}
		{{.AppURL}}/admin/rentals/{{.FolderID}}
	`
)
