package sqlinline

const QSelectUserByID = `--sql eeb2c99e-8b3c-466f-b62a-04f44839bc4d
select id, email, email_verified, coalesce(name, ''), coalesce(picture, ''), created_at, updated_at
from users
where id = $1::uuid;
`
